package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync"
	"github.com/SeamusWaldron/cubesync/internal/logger"
	"github.com/SeamusWaldron/cubesync/internal/scanner"
	"github.com/SeamusWaldron/cubesync/internal/storage"
)

var (
	scanImage string
	scanOrder string
)

var scanCmd = &cobra.Command{
	Use:   "scan <face> [colors...]",
	Short: "Enter the stickers of one face of a physical cube",
	Long: `Overwrite one face of the active cube with scanned stickers.

Colors are given row by row, either as nine separate words or letters
(white yellow red orange blue green, or W Y R O B G) or as a single
nine-letter word. With --image, the stickers are read from a photo of the
face instead.

Once all six faces are scanned, run 'cubesync scan done' to accept the
scanned cube.`,
	Example: `  cubesync scan front RRRRRRRRR
  cubesync scan U w w w w w w w w w
  cubesync scan --image top.png top`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

var scanDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Accept the scanned cube as the new baseline",
	Args:  cobra.NoArgs,
	RunE:  runScanDone,
}

var scanImagesCmd = &cobra.Command{
	Use:   "images <front> <right> <back> <left> <top> <bottom>",
	Short: "Scan all six faces from photos and accept the result",
	Long: `Read one photo per face, in the order front, right, back, left, top, bottom, then complete the scan.

Use --order to give the photos in another order, as six face names or
letters separated by commas.`,
	Example: `  cubesync scan images f.png r.png b.png l.png u.png d.png
  cubesync scan images --order U,D,F,B,L,R u.png d.png f.png b.png l.png r.png`,
	Args: cobra.ExactArgs(len(scanner.ScanOrder)),
	RunE: runScanImages,
}

var scanResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget which faces were scanned",
	Args:  cobra.NoArgs,
	RunE:  runScanReset,
}

func init() {
	scanCmd.Flags().StringVar(&scanImage, "image", "", "Read the face from a PNG or JPEG photo")
	scanImagesCmd.Flags().StringVar(&scanOrder, "order", "", "Faces shown in the photos, comma separated (default front,right,back,left,top,bottom)")

	scanCmd.AddCommand(scanDoneCmd)
	scanCmd.AddCommand(scanImagesCmd)
	scanCmd.AddCommand(scanResetCmd)
	rootCmd.AddCommand(scanCmd)
}

// parseOrder reads a comma separated list of all six faces.
func parseOrder(s string) ([]cubesync.Face, error) {
	parts := strings.Split(s, ",")
	if len(parts) != len(scanner.ScanOrder) {
		return nil, fmt.Errorf("--order needs all %d faces, got %d", len(scanner.ScanOrder), len(parts))
	}
	order := make([]cubesync.Face, 0, len(parts))
	for _, p := range parts {
		f, ok := cubesync.ParseFace(p)
		if !ok {
			return nil, fmt.Errorf("unknown face %q in --order", p)
		}
		order = append(order, f)
	}
	return order, nil
}

// parseColors reads sticker colors from either nine words or one word of
// nine letters.
func parseColors(args []string) ([]cubesync.Color, error) {
	if len(args) == 1 && len(args[0]) == 9 {
		args = strings.Split(args[0], "")
	}

	colors := make([]cubesync.Color, 0, len(args))
	for _, a := range args {
		c, ok := cubesync.ParseColor(a)
		if !ok {
			return nil, fmt.Errorf("unknown color %q", a)
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// recordScans stores every accepted face scan of the workspace session.
func recordScans(w *workspace) {
	repo := storage.NewScanRepository(w.db)
	w.session.OnScan(func(face cubesync.Face, colors [9]cubesync.Color) {
		if _, err := repo.Create(w.sessionID, face, colors); err != nil {
			logger.Log.Warnw("failed to record scan", "face", face.String(), "error", err)
		}
	})
}

func runScan(cmd *cobra.Command, args []string) error {
	face, ok := cubesync.ParseFace(args[0])
	if !ok {
		return fmt.Errorf("unknown face %q", args[0])
	}

	var colors []cubesync.Color
	if scanImage != "" {
		if len(args) > 1 {
			return fmt.Errorf("give either --image or colors, not both")
		}
		img, err := scanner.DecodeFile(scanImage)
		if err != nil {
			return err
		}
		grid := scanner.SampleGrid(img)
		colors = grid[:]
	} else {
		var err error
		colors, err = parseColors(args[1:])
		if err != nil {
			return err
		}
	}

	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()
	recordScans(w)

	if err := w.session.ScanFace(face, colors); err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return err
	}

	fmt.Printf("Scanned %s: %s\n", face, colorWord(colors))
	if missing := missingFaces(w.session.Scanned()); len(missing) > 0 {
		fmt.Printf("Still to scan: %s\n", faceList(missing))
	} else {
		fmt.Println("All faces scanned. Run 'cubesync scan done' to accept.")
	}
	return nil
}

func runScanDone(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	facelets, err := w.session.CompleteScan()
	if err != nil {
		return scanError(err)
	}
	if err := w.save(); err != nil {
		return err
	}

	fmt.Printf("Scan accepted: %s\n", facelets)
	return nil
}

func runScanImages(cmd *cobra.Command, args []string) error {
	opts := []scanner.Option{scanner.WithLogger(logger.Log)}
	if scanOrder != "" {
		order, err := parseOrder(scanOrder)
		if err != nil {
			return err
		}
		opts = append(opts, scanner.WithOrder(order...))
	}

	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()
	recordScans(w)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := scanner.New(scanner.NewFileSource(args...), opts...)
	facelets, err := scanner.Feed(w.session, s.Run(ctx))

	// Faces read before a failure stay scanned.
	if saveErr := w.save(); saveErr != nil && err == nil {
		err = saveErr
	}
	if err != nil {
		return scanError(err)
	}

	fmt.Print(renderNet(w.session.Cube(), -1))
	fmt.Println()
	fmt.Printf("Scan accepted: %s\n", facelets)
	return nil
}

func runScanReset(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	w.session.ResetScan()
	if err := w.save(); err != nil {
		return err
	}
	fmt.Println("Scan progress cleared.")
	return nil
}

// scanError adds a hint to errors the user fixes by scanning again.
func scanError(err error) error {
	if errors.Is(err, cubesync.ErrScanIncomplete) {
		return fmt.Errorf("%w\nScan the missing faces, then run 'cubesync scan done' again", err)
	}
	if cubesync.IsRescanRequired(err) {
		return fmt.Errorf("%w\nCheck the scanned faces with 'cubesync show' and scan the wrong ones again", err)
	}
	if errors.Is(err, cubesync.ErrSolverLimit) {
		return fmt.Errorf("%w\nThe scan is fine; set oracle.kind to search in config.yaml for the full solver", err)
	}
	return err
}

func colorWord(colors []cubesync.Color) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(c.Char())
	}
	return b.String()
}
