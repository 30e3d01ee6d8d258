package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovetools/samoyed/cli"
	"github.com/grovetools/samoyed/config"
	"github.com/grovetools/samoyed/dispatch"
	"github.com/grovetools/samoyed/git"
	"github.com/grovetools/samoyed/hooks"
	"github.com/grovetools/samoyed/logging"
	"github.com/grovetools/samoyed/scaffold"
)

// HookStatus is what a single hook would do if fired now.
type HookStatus struct {
	Hook        string `json:"hook"`
	Action      string `json:"action"`
	Command     string `json:"command,omitempty"`
	Script      string `json:"script,omitempty"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
}

// StatusOutput is the report printed by `samoyed status`.
type StatusOutput struct {
	Root        string            `json:"root"`
	Mode        string            `json:"mode"`
	HooksPath   string            `json:"hooks_path,omitempty"`
	Installed   bool              `json:"installed"`
	Target      string            `json:"target"`
	ConfigFiles map[string]string `json:"config_files,omitempty"`
	Hooks       []HookStatus      `json:"hooks"`
}

func newStatusCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the installed hooks and what each would run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := cli.GetOptions(cmd)
			path, err := configFile(cmd)
			if err != nil {
				return err
			}
			status, err := collectStatus(cmd, deps, path)
			if err != nil {
				return err
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal status: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			printStatus(cmd, status)
			return nil
		},
	}
}

func collectStatus(cmd *cobra.Command, deps Deps, explicitConfig string) (*StatusOutput, error) {
	ctx := cmd.Context()
	cwd, err := deps.cwd()
	if err != nil {
		return nil, err
	}

	g := deps.git()
	root, err := g.DiscoverRoot(ctx, cwd)
	if err != nil {
		return nil, err
	}

	status := &StatusOutput{
		Root:        root,
		Mode:        deps.mode().String(),
		Target:      filepath.Join(root, dispatch.DefaultTarget),
		ConfigFiles: map[string]string{},
	}

	value, ok, err := g.GetHooksPath(ctx, root)
	if err != nil {
		return nil, err
	}
	if ok {
		status.HooksPath = value
		hooksDir := git.ResolveHooksPath(root, value)
		status.Target = dispatch.TargetFromHooksDir(hooksDir)
		status.Installed = filepath.Base(hooksDir) == scaffold.HooksDirName &&
			deps.FS.IsExecutable(filepath.Join(hooksDir, scaffold.WrapperName))
	}

	layered, err := config.NewLoader(deps.FS).LoadLayered(root, explicitConfig)
	if err != nil {
		return nil, err
	}
	for source, path := range layered.FilePaths {
		status.ConfigFiles[string(source)] = path
	}

	resolver := dispatch.NewResolver(deps.FS)
	for _, name := range hooks.All() {
		action := resolver.Resolve(name, layered.Final.Lookup, status.Target)
		hs := HookStatus{
			Hook:    string(name),
			Action:  action.Kind.String(),
			Command: action.Command,
			Script:  action.Script,
		}
		if action.Kind == dispatch.RunCommand {
			hs.Source = string(layered.Origins[string(name)])
			hs.Description = layered.Final.Hooks[string(name)].Description
		}
		status.Hooks = append(status.Hooks, hs)
	}
	return status, nil
}

func printStatus(cmd *cobra.Command, s *StatusOutput) {
	pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())

	pretty.Path("repository", s.Root)
	pretty.Field("mode", s.Mode)
	if s.HooksPath == "" {
		pretty.WarnPretty("core.hooksPath is not set; run 'samoyed init'")
	} else {
		pretty.Field("core.hooksPath", s.HooksPath)
		if !s.Installed {
			pretty.WarnPretty("core.hooksPath does not point at a samoyed hooks directory")
		}
	}
	for _, source := range []config.ConfigSource{config.SourceGlobal, config.SourceProject, config.SourceFlag, config.SourceOverride} {
		if path, ok := s.ConfigFiles[string(source)]; ok {
			pretty.Path(string(source)+" config", path)
		}
	}

	pretty.Blank()
	for _, h := range s.Hooks {
		switch h.Action {
		case "command":
			line := h.Command
			if h.Description != "" {
				line = fmt.Sprintf("%s  # %s", h.Command, h.Description)
			}
			pretty.Field(h.Hook, line)
		case "script":
			pretty.Path(h.Hook, h.Script)
		default:
			pretty.Field(h.Hook, "-")
		}
	}
}
