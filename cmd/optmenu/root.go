package main

import (
	"context"
	"strings"

	"github.com/go-i2p/logger"
	opts "github.com/goliatone/go-options-menu"
	"github.com/goliatone/go-options-menu/pkg/activity"
	"github.com/goliatone/go-options-menu/pkg/menu"
	"github.com/goliatone/go-options-menu/pkg/state"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetGoI2PLogger()

// settings is the resolved host configuration: flags, then OPTMENU_* env
// vars, then the optional config file.
type settings struct {
	File   string
	Domain string
	Window int
	Width  int
	Actor  string
	Audit  bool
}

func loadSettings(v *viper.Viper) settings {
	return settings{
		File:   v.GetString("file"),
		Domain: v.GetString("domain"),
		Window: v.GetInt("window"),
		Width:  v.GetInt("width"),
		Actor:  v.GetString("actor"),
		Audit:  v.GetBool("audit"),
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "optmenu",
		Short:         "Browse and edit persistent options with four buttons",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd, cfgFile)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("file", "", "options document path (default options-<domain>.json)")
	flags.String("domain", "example", "option catalog: "+strings.Join(domainNames(), ", "))
	flags.Int("window", menu.DefaultWindow, "visible lines, odd")
	flags.Int("width", menu.DefaultWidth, "line width")
	flags.String("actor", "", "actor recorded on change events")
	flags.Bool("audit", false, "log every committed change")

	root.AddCommand(newEditCmd(v), newShowCmd(v), newSchemaCmd(v))
	return root
}

func initConfig(v *viper.Viper, cmd *cobra.Command, cfgFile string) error {
	v.SetEnvPrefix("optmenu")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return oops.In("optmenu").Wrapf(err, "bind flags")
	}
	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return oops.In("optmenu").With("config", cfgFile).Wrapf(err, "read config")
	}
	return nil
}

// workspace is everything a command needs to render or edit one domain.
type workspace struct {
	settings   settings
	registry   *opts.Registry
	store      *state.Store
	controller *menu.Controller
}

func openWorkspace(ctx context.Context, s settings) (*workspace, error) {
	d, err := lookupDomain(s.Domain)
	if err != nil {
		return nil, oops.In("optmenu").Wrapf(err, "select domain")
	}
	converters := opts.DefaultConverters()
	registry, err := d.build(converters)
	if err != nil {
		return nil, oops.In("optmenu").With("domain", d.name).Wrapf(err, "build registry")
	}
	if s.File == "" {
		s.File = d.defaultFile()
	}

	storeOptions := []state.Option{state.WithActor(s.Actor)}
	if s.Audit {
		storeOptions = append(storeOptions, state.WithActivity(auditEmitter()))
	}
	store, err := state.OpenFile(ctx, s.File, converters, storeOptions...)
	if err != nil {
		// The store starts empty and stays usable; fallbacks are shown.
		log.WithError(err).WithFields(logger.Fields{
			"at":   "optmenu.openWorkspace",
			"path": s.File,
		}).Warn("options_load_degraded")
	}

	controller, err := menu.New(registry, store, menu.Config{Window: s.Window, Width: s.Width})
	if err != nil {
		return nil, oops.In("optmenu").With("window", s.Window, "width", s.Width).Wrapf(err, "configure menu")
	}
	return &workspace{settings: s, registry: registry, store: store, controller: controller}, nil
}

func auditEmitter() *activity.Emitter {
	hook := activity.HookFunc(func(_ context.Context, event activity.Event) error {
		log.WithFields(logger.Fields{
			"at":       "optmenu.audit",
			"verb":     event.Verb,
			"object":   event.ObjectID,
			"actor":    event.ActorID,
			"metadata": event.Metadata,
		}).Info("option_activity")
		return nil
	})
	return activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true})
}
