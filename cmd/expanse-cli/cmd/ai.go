package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dixieflatline76/Expanse/pkg/expand"
	"github.com/dixieflatline76/Expanse/pkg/media"
	"github.com/dixieflatline76/Expanse/pkg/studio"
	"github.com/spf13/cobra"
)

var (
	prompt     string
	outputPath string

	padTop, padRight, padBottom, padLeft float64

	selection   string
	smoothSkin  int
	enlargeEyes int
	vLine       bool

	aspectRatio string
	refImage    string
)

var expandCmd = &cobra.Command{
	Use:   "expand <image>",
	Short: "Outpaint an image onto a larger canvas",
	Long: `Extend an image by the given number of pixels on each side and let the model fill
the new area. Padding is in the image's own pixels.

Examples:
  expanse-cli expand photo.jpg --top 100 --bottom 100
  expanse-cli expand photo.jpg --left 300 --prompt "more beach" -o wide.png`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var editCmd = &cobra.Command{
	Use:   "edit <mode> [image...]",
	Short: "Run an AI edit",
	Long: `Run one of the AI tools on the given images.

Modes: generate, fill, sharpen, beautify, remove_background, change_background,
face_swap, composite, remove_watermark.

Examples:
  expanse-cli edit generate --prompt "a lighthouse at dusk"
  expanse-cli edit fill room.png --selection 120,80,200,150 --prompt "a plant"
  expanse-cli edit face_swap face.png target.png
  expanse-cli edit beautify portrait.jpg --smooth-skin 40 --v-line`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEdit,
}

var videoCmd = &cobra.Command{
	Use:   "video <prompt>",
	Short: "Generate a short video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideo,
}

func init() {
	rootCmd.AddCommand(expandCmd, editCmd, videoCmd)

	for _, c := range []*cobra.Command{expandCmd, editCmd, videoCmd} {
		c.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: next to the input)")
	}
	for _, c := range []*cobra.Command{expandCmd, editCmd} {
		c.Flags().StringVarP(&prompt, "prompt", "p", "", "instructions for the model")
	}

	expandCmd.Flags().Float64Var(&padTop, "top", 0, "pixels to add above")
	expandCmd.Flags().Float64Var(&padRight, "right", 0, "pixels to add on the right")
	expandCmd.Flags().Float64Var(&padBottom, "bottom", 0, "pixels to add below")
	expandCmd.Flags().Float64Var(&padLeft, "left", 0, "pixels to add on the left")

	editCmd.Flags().StringVar(&selection, "selection", "", "fill area as x,y,width,height in image pixels")
	editCmd.Flags().IntVar(&smoothSkin, "smooth-skin", 0, "beautify: skin smoothing percentage")
	editCmd.Flags().IntVar(&enlargeEyes, "enlarge-eyes", 0, "beautify: eye enlargement percentage")
	editCmd.Flags().BoolVar(&vLine, "v-line", false, "beautify: slim the jawline")

	videoCmd.Flags().StringVar(&aspectRatio, "aspect", "16:9", "aspect ratio, 16:9 or 9:16")
	videoCmd.Flags().StringVar(&refImage, "image", "", "reference image")
}

func aiContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// naturalSize decodes just enough of data to learn its dimensions.
func naturalSize(data []byte) (expand.Size, error) {
	img, _, err := media.Decode(data)
	if err != nil {
		return expand.Size{}, err
	}
	b := img.Bounds()
	return expand.NewSize(float64(b.Dx()), float64(b.Dy())), nil
}

// expansionFor builds the canvas for padding given in natural pixels, so the display size is the
// natural size.
func expansionFor(natural expand.Size, pad expand.Padding) (expand.ExpansionData, bool) {
	return expand.ComputeExpansion(natural, natural, pad)
}

// checkPadding rejects negative sides; expansion never crops.
func checkPadding(pad expand.Padding) error {
	for _, side := range []struct {
		flag string
		v    float64
	}{{"top", pad.Top}, {"right", pad.Right}, {"bottom", pad.Bottom}, {"left", pad.Left}} {
		if side.v < 0 {
			return fmt.Errorf("--%s must not be negative, got %g", side.flag, side.v)
		}
	}
	return nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	natural, err := naturalSize(data)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	pad := expand.Padding{Top: padTop, Right: padRight, Bottom: padBottom, Left: padLeft}
	if err := checkPadding(pad); err != nil {
		return err
	}
	d, ok := expansionFor(natural, pad)
	logf("Canvas %dx%d, image at (%d,%d)", d.NewWidth, d.NewHeight, d.ImageX, d.ImageY)

	s, err := newStudio()
	if err != nil {
		return err
	}
	ctx, cancel := aiContext(cmd)
	defer cancel()

	res, err := s.Expand(ctx, data, d, ok, prompt)
	if err != nil {
		return err
	}
	return writeResult(cmd, res, args[0])
}

// parseSelection reads "x,y,width,height".
func parseSelection(s string) (studio.Selection, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return studio.Selection{}, errors.New("selection must be x,y,width,height")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return studio.Selection{}, fmt.Errorf("bad selection value %q", p)
		}
		v[i] = f
	}
	return studio.Selection{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	mode, ok := studio.ParseMode(args[0])
	if !ok {
		return fmt.Errorf("unknown mode %q", args[0])
	}
	switch mode {
	case studio.ModeExpand:
		return errors.New("use the expand command")
	case studio.ModeGenerateVideo:
		return errors.New("use the video command")
	}

	req := studio.Request{
		Mode:     mode,
		Prompt:   prompt,
		Beautify: studio.BeautifyOptions{SmoothSkin: smoothSkin, EnlargeEyes: enlargeEyes, VLine: vLine},
	}
	for _, path := range args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		req.Images = append(req.Images, data)
	}

	if mode == studio.ModeFill && selection != "" {
		sel, err := parseSelection(selection)
		if err != nil {
			return err
		}
		if len(req.Images) == 0 {
			return errors.New("fill needs an image")
		}
		natural, err := naturalSize(req.Images[0])
		if err != nil {
			return err
		}
		req.Selection, req.DisplaySize = sel, natural
	}

	s, err := newStudio()
	if err != nil {
		return err
	}
	ctx, cancel := aiContext(cmd)
	defer cancel()

	res, err := s.Run(ctx, req)
	if err != nil {
		return err
	}
	source := ""
	if len(args) > 1 {
		source = args[1]
	}
	return writeResult(cmd, res, source)
}

func runVideo(cmd *cobra.Command, args []string) error {
	var ref []byte
	if refImage != "" {
		data, err := os.ReadFile(refImage)
		if err != nil {
			return err
		}
		ref = data
	}

	s, err := newStudio()
	if err != nil {
		return err
	}
	ctx, cancel := aiContext(cmd)
	defer cancel()

	res, err := s.GenerateVideo(ctx, args[0], ref, aspectRatio, func(msg string) {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	})
	if err != nil {
		return err
	}
	return writeResult(cmd, res, refImage)
}

// resultPath picks where a result goes: --output, else next to the source as
// <stem>-<mode><ext>, else the working directory.
func resultPath(res *studio.Result, source string) string {
	if outputPath != "" {
		return outputPath
	}
	name := res.Mode.String() + res.Ext()
	if source == "" {
		return name
	}
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(source), stem+"-"+name)
}

func writeResult(cmd *cobra.Command, res *studio.Result, source string) error {
	path := resultPath(res, source)
	if err := os.WriteFile(path, res.Data, 0644); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}
