// Command picture-perfector renders one of the built-in scenes to a PNG
// file using a tile-parallel Monte Carlo path tracer.
package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/JoeJoeTV/picture-perfector/internal/rlog"
	"github.com/JoeJoeTV/picture-perfector/pkg/imageio"
	"github.com/JoeJoeTV/picture-perfector/pkg/integrator"
	"github.com/JoeJoeTV/picture-perfector/pkg/render"
	"github.com/JoeJoeTV/picture-perfector/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var logger = rlog.New("picture-perfector")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		rlog.SetLevel(rlog.Info)
	}
	if ctx.GlobalBool("vv") {
		rlog.SetLevel(rlog.Debug)
	}
}

var sceneBuilders = map[string]func() *scene.Scene{
	"cornell":    scene.NewCornellScene,
	"spheregrid": scene.NewSphereGridScene,
}

var integratorBuilders = map[string]func(maxDepth int) integrator.Integrator{
	"direct":  func(maxDepth int) integrator.Integrator { return integrator.NewDirect() },
	"path":    func(maxDepth int) integrator.Integrator { return integrator.NewPathTracer(maxDepth) },
	"volume":  func(maxDepth int) integrator.Integrator { return integrator.NewVolumePathTracer(maxDepth) },
	"normals": func(maxDepth int) integrator.Integrator { return integrator.NewNormals() },
	"sdf":     func(maxDepth int) integrator.Integrator { return integrator.NewSDFStepFraction() },
}

func main() {
	app := cli.NewApp()
	app.Name = "picture-perfector"
	app.Usage = "render scenes with a tile-parallel Monte Carlo path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "v", Usage: "enable verbose logging"},
		cli.BoolFlag{Name: "vv", Usage: "enable debug logging"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: listScenes,
		},
		{
			Name:      "render",
			Usage:     "render a scene to a PNG file",
			ArgsUsage: "scene_name",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "integrator, i", Value: "path", Usage: "direct, path, volume, normals, or sdf"},
				cli.IntFlag{Name: "spp", Usage: "samples per pixel (0 = scene default)"},
				cli.IntFlag{Name: "depth", Usage: "max bounce depth (0 = scene default)"},
				cli.StringFlag{Name: "out, o", Value: "render.png", Usage: "output PNG path"},
				cli.Float64Flag{Name: "exposure", Value: 1.0, Usage: "linear exposure applied before gamma encoding"},
				cli.StringFlag{Name: "preview", Usage: "optional path to write a downscaled PNG preview after every tile"},
			},
			Action: renderScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%s", err.Error())
		os.Exit(1)
	}
}

func listScenes(ctx *cli.Context) error {
	for name := range sceneBuilders {
		fmt.Println(name)
	}
	return nil
}

func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return cli.NewExitError("expected exactly one scene name argument", 1)
	}
	name := ctx.Args().First()
	build, ok := sceneBuilders[name]
	if !ok {
		return cli.NewExitError(fmt.Sprintf("unknown scene %q", name), 1)
	}

	integName := ctx.String("integrator")
	newInteg, ok := integratorBuilders[integName]
	if !ok {
		return cli.NewExitError(fmt.Sprintf("unknown integrator %q", integName), 1)
	}

	sc := build()
	cfg := render.Default(sc.Config.Width, sc.Config.Height)
	cfg.SamplesPerPixel = sc.Config.SamplesPerPixel
	cfg.MaxDepth = sc.Config.MaxDepth
	cfg.RussianRouletteMinBounces = sc.Config.RussianRouletteMinBounces
	cfg.RussianRouletteMinSamples = sc.Config.RussianRouletteMinSamples
	if spp := ctx.Int("spp"); spp > 0 {
		cfg.SamplesPerPixel = spp
	}
	if depth := ctx.Int("depth"); depth > 0 {
		cfg.MaxDepth = depth
	}

	integ := newInteg(cfg.MaxDepth)
	driver := render.NewDriver(sc, integ, cfg, 1)

	previewPath := ctx.String("preview")

	logger.Noticef("rendering %q (%dx%d, %d spp, %s integrator)...", name, cfg.Width, cfg.Height, cfg.SamplesPerPixel, integName)
	start := time.Now()

	fb := driver.Render(func(tile render.Tile, completed, total int, partial *render.Framebuffer) {
		logger.Debugf("tile %d/%d done", completed, total)
		if previewPath != "" {
			if err := imageio.SaveThumbnailPNG(previewPath, partial, ctx.Float64("exposure"), 640, 640); err != nil {
				logger.Warningf("preview write failed: %s", err.Error())
			}
		}
	})

	elapsed := time.Since(start)

	if err := imageio.SavePNG(ctx.String("out"), fb, ctx.Float64("exposure")); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	displayStats(name, integName, cfg, elapsed)
	logger.Noticef("wrote %s", ctx.String("out"))
	return nil
}

func displayStats(sceneName, integName string, cfg render.Config, elapsed time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Scene", "Integrator", "Resolution", "Samples/px", "Max depth", "Render time"})
	table.Append([]string{
		sceneName,
		integName,
		fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		fmt.Sprintf("%d", cfg.SamplesPerPixel),
		fmt.Sprintf("%d", cfg.MaxDepth),
		elapsed.Round(time.Millisecond).String(),
	})
	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
