package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Expanse/pkg/media"
	"github.com/spf13/cobra"
)

var (
	outDir   string
	zipPath  string
	quality  int
	toFormat string

	width, height int
	lockAspect    bool

	filterName string

	wmText     string
	wmColor    string
	wmSize     float64
	wmLogo     string
	wmLogoSize float64
	wmFrame    string
	wmSmart    bool
	wmOpacity  float64
	wmPosition string
)

var resizeCmd = &cobra.Command{
	Use:   "resize <image...>",
	Short: "Resize images",
	Long: `Resize images to a width and/or height. With --lock the aspect ratio is kept and a
zero side is derived from the other.

Examples:
  expanse-cli resize a.jpg b.jpg --width 800
  expanse-cli resize *.png --width 512 --height 512 --lock=false --format jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if width <= 0 && height <= 0 {
			return errors.New("set --width or --height")
		}
		proc := func(ctx context.Context, img image.Image) (image.Image, error) {
			return media.Resize(img, width, height, lockAspect)
		}
		return runBatch(cmd, args, proc, "resized")
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <image...>",
	Short: "Convert images to another format",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if toFormat == "" {
			return errors.New("set --format")
		}
		proc := func(ctx context.Context, img image.Image) (image.Image, error) {
			return img, nil
		}
		return runBatch(cmd, args, proc, "converted")
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter <image...>",
	Short: "Apply a photo filter preset",
	Long: fmt.Sprintf(`Apply one of the filter presets.

Filters: %s`, strings.Join(media.FilterNames(), ", ")),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := media.FilterByName(filterName)
		if err != nil {
			return err
		}
		proc := func(ctx context.Context, img image.Image) (image.Image, error) {
			return f.Apply(img), nil
		}
		return runBatch(cmd, args, proc, strings.ToLower(f.Name))
	},
}

var watermarkCmd = &cobra.Command{
	Use:   "watermark <image...>",
	Short: "Stamp text, a logo or a frame on images",
	Long: `Stamp a watermark on images. --logo and --frame switch from text to that mode.

Positions: top-left, top-center, top-right, center-left, center, center-right,
bottom-left, bottom-center, bottom-right.

Examples:
  expanse-cli watermark *.jpg --text "© Jane" --position bottom-left
  expanse-cli watermark *.jpg --logo logo.png --logo-width 20 --opacity 0.5
  expanse-cli watermark *.jpg --frame frame.png --smart-crop`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wm, err := watermarkFromFlags()
		if err != nil {
			return err
		}
		proc := func(ctx context.Context, img image.Image) (image.Image, error) {
			return wm.Apply(ctx, img)
		}
		return runBatch(cmd, args, proc, "watermarked")
	},
}

func init() {
	batchCmds := []*cobra.Command{resizeCmd, convertCmd, filterCmd, watermarkCmd}
	rootCmd.AddCommand(batchCmds...)

	for _, c := range batchCmds {
		c.Flags().StringVarP(&outDir, "out-dir", "d", "", "output directory (default: next to each input)")
		c.Flags().StringVar(&zipPath, "zip", "", "also write all outputs to this zip archive")
		c.Flags().IntVarP(&quality, "quality", "q", media.DefaultJPEGQuality, "JPEG quality 1-100")
		c.Flags().StringVarP(&toFormat, "format", "f", "", "output format: png, jpg, gif, bmp, tiff (default: keep)")
	}

	resizeCmd.Flags().IntVar(&width, "width", 0, "target width")
	resizeCmd.Flags().IntVar(&height, "height", 0, "target height")
	resizeCmd.Flags().BoolVar(&lockAspect, "lock", true, "keep the aspect ratio")

	filterCmd.Flags().StringVar(&filterName, "name", "", "filter preset")
	filterCmd.MarkFlagRequired("name")

	def := media.DefaultWatermark()
	watermarkCmd.Flags().StringVar(&wmText, "text", def.Text, "watermark text")
	watermarkCmd.Flags().StringVar(&wmColor, "color", "#ffffff", "text colour as #rrggbb")
	watermarkCmd.Flags().Float64Var(&wmSize, "font-size", def.FontSize, "text height as a percentage of the image height")
	watermarkCmd.Flags().StringVar(&wmLogo, "logo", "", "logo image")
	watermarkCmd.Flags().Float64Var(&wmLogoSize, "logo-width", def.LogoWidth, "logo width as a percentage of the image width")
	watermarkCmd.Flags().StringVar(&wmFrame, "frame", "", "frame overlay image; photos are cropped to 16:9")
	watermarkCmd.Flags().BoolVar(&wmSmart, "smart-crop", false, "frame mode: crop to the most interesting region")
	watermarkCmd.Flags().Float64Var(&wmOpacity, "opacity", def.Opacity, "opacity 0-1")
	watermarkCmd.Flags().StringVar(&wmPosition, "position", def.Position.String(), "anchor position")
}

func watermarkFromFlags() (media.Watermark, error) {
	wm := media.DefaultWatermark()
	wm.Text, wm.FontSize, wm.LogoWidth, wm.Opacity = wmText, wmSize, wmLogoSize, wmOpacity

	c, err := media.ParseHexColor(wmColor)
	if err != nil {
		return wm, err
	}
	wm.Color = c
	if wm.Position, err = media.ParsePosition(wmPosition); err != nil {
		return wm, err
	}

	switch {
	case wmFrame != "":
		wm.Mode = media.WatermarkFrame
		if wm.Frame, _, err = media.DecodeFile(wmFrame); err != nil {
			return wm, fmt.Errorf("failed to read frame: %w", err)
		}
		if wmSmart {
			wm.FrameCrop = media.CropSmart
		}
	case wmLogo != "":
		wm.Mode = media.WatermarkLogo
		if wm.Logo, _, err = media.DecodeFile(wmLogo); err != nil {
			return wm, fmt.Errorf("failed to read logo: %w", err)
		}
	}
	return wm, wm.Validate()
}

func readItems(paths []string) ([]media.Item, error) {
	items := make([]media.Item, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		items = append(items, media.Item{Name: p, Data: data})
	}
	return items, nil
}

// batchOutputPath places an output next to its input, or in --out-dir, as <stem>-<suffix><ext>.
func batchOutputPath(out media.Output, suffix string) string {
	dir := filepath.Dir(out.Name)
	if outDir != "" {
		dir = outDir
	}
	base := filepath.Base(out.Name)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+"-"+suffix+ext)
}

func runBatch(cmd *cobra.Command, args []string, proc media.Processor, suffix string) error {
	opts := media.BatchOptions{
		MaxFiles: len(args),
		Encode:   media.Options{Quality: quality},
		Progress: func(done, total int) {
			logf("%d/%d", done, total)
		},
	}
	if toFormat != "" {
		f, err := media.ParseFormat(toFormat)
		if err != nil {
			return err
		}
		if !f.CanEncode() {
			return fmt.Errorf("%s can be read but not written", f)
		}
		opts.Format = f
	}

	items, err := readItems(args)
	if err != nil {
		return err
	}
	outs, err := media.Batch(cmd.Context(), items, proc, opts)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
	}
	w := cmd.OutOrStdout()
	failed := 0
	for i, out := range outs {
		if out.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[i], out.Err)
			continue
		}
		path := batchOutputPath(out, suffix)
		if err := os.WriteFile(path, out.Data, 0644); err != nil {
			return err
		}
		fmt.Fprintf(w, "Saved %s\n", path)
	}

	if zipPath != "" {
		f, err := os.Create(zipPath)
		if err != nil {
			return err
		}
		n, err := media.Zip(f, outs)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Archived %d files in %s\n", n, zipPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(outs))
	}
	return nil
}
