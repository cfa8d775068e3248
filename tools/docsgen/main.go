// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders a markdown reference page per sfictl subcommand from the
// live CLI definition, so the docs never drift from the flags. Usage:
//
//	go run ./tools/docsgen docs/commands
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/kicksaw/sfictl/internal/command"
)

const pageTemplate = `# sfictl {{.Name}}

{{.Usage}}

## Usage

` + "```" + `
{{.UsageText}}
` + "```" + `

## Flags

| Flag | Description |
|------|-------------|
{{range .Flags}}| ` + "`--{{index .Names 0}}`" + ` | {{flagUsage .}} |
{{end}}
---
Generated {{.Date}} for sfictl {{.Version}}.
`

type page struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Date      string
	Version   string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <output dir>")
		os.Exit(1)
	}
	outDir := os.Args[1]

	app, err := command.InitApp(context.Background(), []string{"sfictl"})
	if err != nil {
		panic(err)
	}

	tmpl := template.Must(template.New("page").Funcs(template.FuncMap{
		"flagUsage": flagUsage,
	}).Parse(pageTemplate))

	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	for _, sub := range app.Commands {
		p := page{
			Name:      sub.Name,
			Usage:     sub.Usage,
			UsageText: sub.UsageText,
			Flags:     sub.Flags,
			Date:      time.Now().Format("January 2, 2006"),
			Version:   getVersion(),
		}
		if p.UsageText == "" {
			p.UsageText = "sfictl " + sub.Name + " [options]"
		}

		path := filepath.Join(outDir, "sfictl-"+sub.Name+".md")
		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		fmt.Println("Generating", path)
		if err := tmpl.Execute(file, p); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// flagUsage pulls the usage text off the concrete flag types the app uses.
func flagUsage(f cli.Flag) string {
	switch flag := f.(type) {
	case *cli.StringFlag:
		return flag.Usage
	case *cli.BoolFlag:
		return flag.Usage
	default:
		return ""
	}
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
