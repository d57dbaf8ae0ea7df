package main

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/optical-center-mcp/internal/config"
	"github.com/ironsheep/optical-center-mcp/internal/imaging"
	"github.com/ironsheep/optical-center-mcp/internal/optical"
	"github.com/ironsheep/optical-center-mcp/internal/server"
)

// app carries the state resolved before any subcommand runs.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	v := config.New()

	root := &cobra.Command{
		Use:   "optical-center-mcp",
		Short: "Find the optical center of an image",
		Long: `optical-center-mcp computes the smallest circle enclosing the opaque pixels
of an image. The circle's center is the image's optical center.

Without a subcommand it runs as an MCP server over stdin/stdout. Settings
come from defaults, an optional --config file, OPTICAL_MCP_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfgFile != "" {
				if err := config.ReadFile(v, a.cfgFile); err != nil {
					return err
				}
			}
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			// stdout carries MCP frames or command output
			a.log = cfg.NewLogger(cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "configuration file (toml, yaml or json)")
	pf.String("log-level", "info", "log level: panic, fatal, error, warn, info, debug or trace")
	pf.Int("alpha-threshold", 0, "a pixel is opaque when its alpha exceeds this value (0-255)")
	pf.Bool("boundary-only", true, "scan only the outline of the opaque region")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the MCP server over stdin/stdout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve()
			},
		},
		&cobra.Command{
			Use:   "analyze <image>",
			Short: "Print the optical-center analysis of an image as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				_, res, err := a.analyze(args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			},
		},
		newRenderCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "optical-center-mcp %s\n", Version)
				fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
				fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			},
		},
	)

	return root
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		output    string
		showLabel bool
		scale     float64
	)

	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Save the image with its convex hull and enclosing circle drawn on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, res, err := a.analyze(args[0])
			if err != nil {
				return err
			}
			circle := res.Circle.Circle()
			err = imaging.SaveOverlay(img, imaging.OverlaySpec{
				Path:        optical.Points(res.Hull),
				Circle:      &circle,
				PathColor:   a.cfg.PathColor,
				CircleColor: a.cfg.CircleColor,
				ShowLabel:   showLabel,
				Scale:       scale,
			}, output)
			if err != nil {
				return err
			}
			a.log.WithField("output", output).Info("overlay saved")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output file; the extension selects the format")
	f.String("path-color", imaging.DefaultPathColor, "hull color (#RRGGBB or #RRGGBBAA)")
	f.String("circle-color", imaging.DefaultCircleColor, "circle color (#RRGGBB or #RRGGBBAA)")
	f.BoolVar(&showLabel, "label", true, "label the circle center with its coordinates")
	f.Float64Var(&scale, "scale", 1.0, "scale factor applied after drawing")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (a *app) serve() error {
	a.log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Info("starting MCP server")

	return server.New(a.cfg, a.log, Version).Run()
}

// analyze loads path and runs the optical-center pipeline with the resolved
// configuration.
func (a *app) analyze(path string) (image.Image, *optical.Result, error) {
	img, err := imaging.NewImageCache().Load(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := optical.Analyze(img, optical.Options{
		AlphaThreshold: a.cfg.AlphaThreshold,
		BoundaryOnly:   a.cfg.BoundaryOnly,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.WithFields(logrus.Fields{
		"path":   path,
		"pixels": res.OpaquePixels,
		"radius": res.Circle.Radius,
	}).Debug("analyzed image")
	return img, res, nil
}
