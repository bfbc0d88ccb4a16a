package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/spk/internal/content"
	"github.com/jorge-barreto/spk/internal/detect"
	"github.com/jorge-barreto/spk/internal/journal"
	"github.com/jorge-barreto/spk/internal/scaffold"
	"github.com/jorge-barreto/spk/internal/templates"
	"github.com/jorge-barreto/spk/internal/ux"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// defaultOutDirs is where init points generated components per framework.
var defaultOutDirs = map[string]string{
	content.React:   "src/components",
	content.Angular: "src/app",
}

func frameworkFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "framework",
		Aliases: []string{"f"},
		Usage:   "Target framework (react or angular)",
	}
}

func initCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .spk/ directory for this project",
		Flags: []cli.Flag{
			frameworkFlag(),
			&cli.StringFlag{Name: "out-dir", Usage: "Default directory for generated components"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			proj, err := detect.Detect(dir)
			if err != nil {
				return err
			}
			fw := strings.ToLower(strings.TrimSpace(cmd.String("framework")))
			if fw == "" {
				fw = proj.Framework
			}
			if fw == "" {
				fw = content.React
			}
			outDir := cmd.String("out-dir")
			if outDir == "" {
				outDir = defaultOutDirs[fw]
			}
			if err := scaffold.Init(dir, fw, outDir, stdout); err != nil {
				return err
			}
			if proj.HasPackageJSON && !proj.Installed() {
				ux.Warn(stdout, "no @spoosh/* package found in package.json; run 'spk docs setup'")
			}
			return nil
		},
	}
}

func docsCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show Spoosh documentation for a topic",
		ArgsUsage: "[topic]",
		Flags: []cli.Flag{
			frameworkFlag(),
			&cli.BoolFlag{Name: "raw", Usage: "Print markdown without terminal styling"},
			&cli.BoolFlag{Name: "list", Usage: "List available topics"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := openProject()
			if err != nil {
				return err
			}
			fw, err := p.framework(cmd.String("framework"))
			if err != nil {
				return err
			}
			reg, err := p.registry(fw)
			if err != nil {
				return err
			}
			if cmd.Bool("list") {
				ux.TopicList(stdout, reg)
				return nil
			}

			doc := reg.Documentation(strings.Join(cmd.Args().Slice(), " "))
			styled := !cmd.Bool("raw") && isTerminal(stdout)
			if err := ux.Markdown(stdout, doc.Fragment.Content, styled); err != nil {
				return err
			}
			ux.Related(stdout, doc.RelatedTopics, styled)
			return nil
		},
	}
}

func templatesCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List component template types",
		Flags: []cli.Flag{frameworkFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := openProject()
			if err != nil {
				return err
			}
			fw, err := p.framework(cmd.String("framework"))
			if err != nil {
				return err
			}
			cat, err := p.catalog(fw)
			if err != nil {
				return err
			}
			ux.TemplateList(stdout, cat)
			return nil
		},
	}
}

func genCmd(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "Generate a component from a template",
		ArgsUsage: "<type> [ComponentName]",
		Flags: []cli.Flag{
			frameworkFlag(),
			&cli.StringFlag{Name: "endpoint", Aliases: []string{"e"}, Usage: "API path the component reads or writes"},
			&cli.StringFlag{Name: "selector", Usage: "Angular component selector"},
			&cli.StringSliceFlag{Name: "set", Usage: "Placeholder value as key=value (repeatable)"},
			&cli.StringFlag{Name: "out", Usage: "Write files under this directory instead of stdout"},
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "Write files under the configured out-dir"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite existing files"},
			&cli.BoolFlag{Name: "allow-partial", Usage: "Print output even if placeholders are unresolved"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			typ := cmd.Args().Get(0)
			if typ == "" {
				return fmt.Errorf("template type argument is required (valid types: %s)", strings.Join(templates.Types, ", "))
			}

			p, err := openProject()
			if err != nil {
				return err
			}
			fw, err := p.framework(cmd.String("framework"))
			if err != nil {
				return err
			}
			cat, err := p.catalog(fw)
			if err != nil {
				return err
			}

			flags := map[string]string{}
			if name := cmd.Args().Get(1); name != "" {
				flags["componentName"] = name
			}
			if v := cmd.String("endpoint"); v != "" {
				flags["endpoint"] = v
			}
			if v := cmd.String("selector"); v != "" {
				flags["selector"] = v
			}
			sets, err := parseSets(cmd.StringSlice("set"))
			if err != nil {
				return err
			}
			params := mergeParams(p.Cfg.Params, flags, sets)

			out, err := cat.Render(typ, params)
			if err != nil {
				return err
			}

			dir := cmd.String("out")
			if dir == "" && cmd.Bool("write") {
				dir = p.Cfg.OutDir
			}
			if dir != "" {
				if out.Partial() {
					ux.Unresolved(stderr, out.Unresolved)
					return fmt.Errorf("%w: %s", scaffold.ErrPartial, strings.Join(out.Unresolved, ", "))
				}
				abs, err := filepath.Abs(dir)
				if err != nil {
					return err
				}
				written, err := scaffold.Write(out, abs, cmd.Bool("force"))
				if err != nil {
					return err
				}
				ux.FilesWritten(stdout, out.Type+" component", written)
				if p.HasConfig {
					record(stderr, p.Root, p.SpkDir(), fw, out.Type, params, written)
				}
				return nil
			}

			if out.Partial() {
				ux.Unresolved(stderr, out.Unresolved)
				if !cmd.Bool("allow-partial") {
					return fmt.Errorf("%w: %s (use --allow-partial to print anyway)",
						scaffold.ErrPartial, strings.Join(out.Unresolved, ", "))
				}
			}
			_, err = io.WriteString(stdout, out.Source)
			return err
		},
	}
}

func historyCmd(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List components generated with gen --out",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := openProject()
			if err != nil {
				return err
			}
			j, err := journal.Load(journal.Path(p.SpkDir()))
			if err != nil {
				return err
			}
			ux.History(stdout, j.Newest())
			return nil
		},
	}
}

// parseSets splits repeated --set key=value flags.
func parseSets(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, kv := range values {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || !templates.ValidName(k) {
			return nil, fmt.Errorf("invalid --set %q (want name=value)", kv)
		}
		out[k] = v
	}
	return out, nil
}

// mergeParams layers values: derived from componentName, then config params,
// then named flags, then --set.
func mergeParams(cfgParams, flags, sets map[string]string) map[string]string {
	name := flags["componentName"]
	if n, ok := sets["componentName"]; ok {
		name = n
	}
	params := templates.DeriveParams(name)
	for _, layer := range []map[string]string{cfgParams, flags, sets} {
		for k, v := range layer {
			params[k] = v
		}
	}
	return params
}

// record appends a journal entry. Failures are warnings since the files
// are already on disk.
func record(w io.Writer, root, spkDir, fw, typ string, params map[string]string, written []string) {
	files := make([]string, len(written))
	for i, path := range written {
		if rel, err := filepath.Rel(root, path); err == nil {
			files[i] = rel
		} else {
			files[i] = path
		}
	}
	e, err := journal.Append(journal.Path(spkDir), journal.Entry{
		Framework: fw,
		Type:      typ,
		Params:    params,
		Files:     files,
	})
	if err != nil {
		zap.L().Warn("journal append failed", zap.Error(err))
		ux.Warn(w, "could not record history: %v", err)
		return
	}
	zap.L().Debug("journal entry recorded", zap.String("id", e.ID))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ux.IsTerminal(f)
}
