package main

import (
	"bytes"
	"embed"
	"flag"
	"log"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(template.FuncMap{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			var out []flagInfo
			if fs == nil {
				return out
			}
			fs.VisitAll(func(f *flag.Flag) {
				out = append(out, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return out
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

// HelpData is what a help template renders.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError asks main to print the help of the command it wraps.
type UsageError struct {
	of  HelpData
	msg string
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	if e.msg != "" {
		return e.msg + "\n\n" + help
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func (r *root) Template() string        { return "root.txt" }
func (a *annotateCmd) Template() string { return "annotate.txt" }
func (c *replayCmd) Template() string   { return "replay.txt" }
func (c *configCmd) Template() string   { return "config.txt" }
func (v *versionCmd) Template() string  { return "version.txt" }
