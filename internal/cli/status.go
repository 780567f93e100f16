package cli

import (
	"fmt"
	"io"

	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/paths"
	"github.com/hbjs97/envline/internal/resolver"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

func (a *App) newStatusCmd() *cobra.Command {
	var (
		dir    string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "현재 디렉토리의 direnv 상태와 판정 근거를 표시한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd, dir, asJSON)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "판정 기준 디렉토리 (기본: 현재 디렉토리)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "JSON으로 출력")
	return cmd
}

// rcReport는 .envrc 하나에 대한 표시용 정보다.
type rcReport struct {
	Path      string
	Allowed   string
	AllowPath string
	DenyPath  string
	Err       error
}

func (a *App) runStatus(cmd *cobra.Command, dirFlag string, asJSON bool) error {
	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return err
	}
	dir, err := a.workDir(dirFlag)
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}
	res, err := a.pipeline(cfg).Resolve(cmd.Context(), dir)
	if err != nil {
		return err
	}

	store := direnv.NewStore(a.Fs, a.dataDir(cfg))
	found := a.report(store, res.State.RCPath, res.State.Allowed)
	loaded := a.report(store, res.State.LoadedRCPath, res.State.LoadedAllowed)

	if asJSON {
		out, err := statusJSON(res, found, loaded)
		if err != nil {
			return fmt.Errorf("cli.status: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	printStatus(cmd.OutOrStdout(), res, found, loaded)
	return nil
}

func (a *App) report(store *direnv.Store, path string, status *direnv.AllowStatus) *rcReport {
	if path == "" {
		return nil
	}
	r := &rcReport{Path: paths.ContractHome(path, a.Home)}
	if status != nil {
		r.Allowed = status.String()
	}
	fp, err := store.Fingerprints(path)
	if err != nil {
		r.Err = err
		return r
	}
	r.AllowPath = paths.ContractHome(store.AllowPath(fp), a.Home)
	r.DenyPath = paths.ContractHome(store.DenyPath(fp), a.Home)
	return r
}

func printStatus(w io.Writer, res *resolver.Result, found, loaded *rcReport) {
	source := res.Source
	if res.Decoder != "" {
		source = fmt.Sprintf("%s (%s)", res.Source, res.Decoder)
	}
	fmt.Fprintf(w, "source: %s\n", source)
	if !res.State.Applicable() {
		fmt.Fprintln(w, "적용되는 .envrc 없음")
		return
	}
	printRC(w, "found", found)
	printRC(w, "loaded", loaded)
}

func printRC(w io.Writer, label string, r *rcReport) {
	if r == nil {
		fmt.Fprintf(w, "%s: -\n", label)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, r.Path)
	if r.Allowed != "" {
		fmt.Fprintf(w, "  allowed: %s\n", r.Allowed)
	}
	if r.Err != nil {
		fmt.Fprintf(w, "  fingerprint: %v\n", r.Err)
		return
	}
	fmt.Fprintf(w, "  allow:   %s\n", r.AllowPath)
	fmt.Fprintf(w, "  deny:    %s\n", r.DenyPath)
}

func statusJSON(res *resolver.Result, found, loaded *rcReport) (string, error) {
	out := `{}`
	var err error
	if out, err = sjson.Set(out, "source", res.Source); err != nil {
		return "", err
	}
	if res.Decoder != "" {
		if out, err = sjson.Set(out, "decoder", res.Decoder); err != nil {
			return "", err
		}
	}
	if out, err = setReport(out, "foundRC", found); err != nil {
		return "", err
	}
	return setReport(out, "loadedRC", loaded)
}

type jsonField struct {
	name  string
	value string
}

func setReport(doc, key string, r *rcReport) (string, error) {
	if r == nil {
		return sjson.SetRaw(doc, key, "null")
	}
	fields := []jsonField{
		{"path", r.Path},
		{"allowed", r.Allowed},
		{"allowPath", r.AllowPath},
		{"denyPath", r.DenyPath},
	}
	if r.Err != nil {
		fields = append(fields, jsonField{"error", r.Err.Error()})
	}

	var err error
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if doc, err = sjson.Set(doc, key+"."+f.name, f.value); err != nil {
			return "", err
		}
	}
	return doc, nil
}
