package setup

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/setupctl/internal/logging"
	"github.com/danmuck/setupctl/internal/provision"
	"github.com/danmuck/setupctl/internal/provision/bun"
	"github.com/danmuck/setupctl/internal/provision/code"
	"github.com/danmuck/setupctl/internal/provision/fish"
	"github.com/danmuck/setupctl/internal/provision/nodejs"
	"github.com/danmuck/setupctl/internal/provision/pnpm"
	"github.com/danmuck/setupctl/internal/provision/uv"
	"github.com/danmuck/setupctl/internal/tools"
)

// RemoteConfig selects an SSH target to provision instead of the local host.
type RemoteConfig struct {
	Host                        string
	Port                        string
	User                        string
	KeyPath                     string
	KnownHostsPath              string
	InsecureSkipHostKeyChecking bool
}

// ServiceConfig configures one provisioning run.
type ServiceConfig struct {
	LogPath       string
	Prerequisites []string
	NodeMajor     string
	BunInstallDir string
	EditorURL     string
	ShellURL      string
	Remote        RemoteConfig
}

// Setup service defaults for a standalone run on the local host.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		LogPath:       "/var/log/setupctl.log",
		Prerequisites: []string{"curl", "ca-certificates", "gnupg"},
		NodeMajor:     nodejs.DefaultMajor,
		BunInstallDir: bun.DefaultInstallDir,
		EditorURL:     code.DefaultDownloadURL,
		ShellURL:      fish.DefaultReleaseURL,
	}
}

// Service runs the fixed provisioning sequence: privilege guard,
// prerequisite packages, the tool plan, then the summary report.
type Service struct {
	cfg      ServiceConfig
	runner   tools.CommandRunner
	registry *provision.Registry
	apt      provision.Apt
}

// Setup service constructor using default standalone config.
func NewService() (*Service, error) {
	return NewServiceWithConfig(DefaultServiceConfig())
}

// NewServiceWithConfig builds the runner and registers the tool plan in its
// fixed order. Registration fails if a tool declares an unmet requirement.
func NewServiceWithConfig(cfg ServiceConfig) (*Service, error) {
	return newServiceWithRunner(cfg, buildRunner(cfg.Remote))
}

func newServiceWithRunner(cfg ServiceConfig, runner tools.CommandRunner) (*Service, error) {
	registry := provision.NewRegistry()
	plan := []provision.Tool{
		nodejs.NewToolWithRunner(cfg.NodeMajor, runner),
		pnpm.NewToolWithRunner(runner),
		bun.NewToolWithRunner(cfg.BunInstallDir, runner),
		uv.NewToolWithRunner(runner),
		code.NewToolWithRunner(cfg.EditorURL, runner),
		fish.NewToolWithRunner(cfg.ShellURL, runner),
	}
	for _, tool := range plan {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("register %s: %w", tool.Metadata().ID, err)
		}
	}

	return &Service{
		cfg:      cfg,
		runner:   runner,
		registry: registry,
		apt:      provision.NewApt(runner),
	}, nil
}

func buildRunner(remote RemoteConfig) tools.CommandRunner {
	if strings.TrimSpace(remote.Host) == "" {
		return tools.ExecRunner{}
	}
	return tools.SSHRunner{
		Host:                        remote.Host,
		Port:                        remote.Port,
		User:                        remote.User,
		KeyPath:                     remote.KeyPath,
		KnownHostsPath:              remote.KnownHostsPath,
		InsecureSkipHostKeyChecking: remote.InsecureSkipHostKeyChecking,
	}
}

// Plan returns tool metadata in execution order.
func (s *Service) Plan() []provision.ToolMetadata {
	plan := s.registry.Plan()
	metas := make([]provision.ToolMetadata, 0, len(plan))
	for _, tool := range plan {
		metas = append(metas, tool.Metadata())
	}
	return metas
}

// Run executes the whole sequence. The first failing step aborts the run;
// only version queries and the pnpm activator skip are tolerated.
func (s *Service) Run() error {
	if err := provision.RequireRoot(s.runner); err != nil {
		return err
	}

	log.Info().Msg("refreshing package index")
	if err := s.apt.Update(); err != nil {
		return err
	}
	log.Info().Str("packages", strings.Join(s.cfg.Prerequisites, " ")).Msg("installing prerequisites")
	if err := s.apt.Install(s.cfg.Prerequisites...); err != nil {
		return err
	}

	for _, tool := range s.registry.Plan() {
		if err := s.provisionTool(tool); err != nil {
			return fmt.Errorf("%s: %w", tool.Metadata().ID, err)
		}
	}

	s.Summary()
	return nil
}

// provisionTool skips tools that already resolve on the search path; the
// probe is the sole idempotence guard.
func (s *Service) provisionTool(tool provision.Tool) error {
	meta := tool.Metadata()
	if s.runner.Exists(meta.Command) {
		version := provision.QueryVersion(s.runner, meta)
		log.Info().Str("tool", meta.ID).Str("version", version.String()).Msg("already installed")
		return nil
	}

	log.Info().Str("tool", meta.ID).Msg("installing")
	if err := tool.Install(); err != nil {
		return err
	}
	version := provision.QueryVersion(s.runner, meta)
	log.Info().Str("tool", meta.ID).Str("version", version.String()).Msg("install finished")
	return nil
}

// Summary re-probes every tool and reports final status. Probes and version
// queries are tolerant, so the summary itself never fails.
func (s *Service) Summary() {
	for _, tool := range s.registry.Plan() {
		meta := tool.Metadata()
		version := provision.QueryVersion(s.runner, meta)
		if !version.Installed() {
			log.Warn().Str("tool", meta.ID).Msg("not installed")
			continue
		}
		log.Info().Str("tool", meta.ID).Str("version", version.String()).Msg("installed")
	}
	if path := logging.LogPath(); path != "" {
		log.Info().Str("path", path).Msg("run log")
	}
	log.Info().Msg("provisioning complete")
}
