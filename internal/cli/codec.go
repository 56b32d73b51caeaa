package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the active cube as a solver facelet string",
	Long: `Print the active cube in URFDLB facelet order, the format solvers accept.
Fails if the colors do not each appear exactly nine times.`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <facelets>",
	Short: "Draw a 54-character facelet string",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <r> <g> <b>",
	Short: "Classify an RGB camera sample as a sticker color",
	Args:  cobra.ExactArgs(3),
	RunE:  runClassify,
}

var algoApply bool

var algoCmd = &cobra.Command{
	Use:   "algo [id]",
	Short: "List or show predefined algorithms",
	Long:  `Without arguments, list the predefined algorithms. With an ID, show its moves; add --apply to turn them on the active cube.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAlgo,
}

func init() {
	algoCmd.Flags().BoolVar(&algoApply, "apply", false, "Apply the algorithm to the active cube")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(algoCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	facelets, err := cubesync.Encode(w.session.Cube())
	if err != nil {
		return scanError(err)
	}
	fmt.Println(facelets)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	c, err := cubesync.Decode(args[0])
	if err != nil {
		return err
	}

	fmt.Print(renderNet(c, -1))
	if err := cubesync.Validate(args[0]); err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
	} else if c.IsSolved() {
		fmt.Println(statusStyle.Render("solved"))
	}
	return nil
}

func parseChannel(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("channel %q must be 0-255", s)
	}
	return uint8(v), nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	var rgb [3]uint8
	for i, a := range args {
		v, err := parseChannel(a)
		if err != nil {
			return err
		}
		rgb[i] = v
	}

	h, s, v := cubesync.HSV(rgb[0], rgb[1], rgb[2])
	c := cubesync.Classify(rgb[0], rgb[1], rgb[2])
	fmt.Printf("%s %s  (h=%.3f s=%.3f v=%.3f)\n", renderSticker(c, false), c, h, s, v)
	return nil
}

func runAlgo(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		category := ""
		for _, a := range cubesync.Algorithms() {
			if a.Category != category {
				category = a.Category
				fmt.Println(titleStyle.Render(category))
			}
			fmt.Printf("  %-10s %-10s %s\n", a.ID, a.Name, cubesync.FormatMoves(a.Moves))
		}
		return nil
	}

	a, ok := cubesync.Algorithm(args[0])
	if !ok {
		return fmt.Errorf("unknown algorithm %q (run 'cubesync algo' to list them)", args[0])
	}
	fmt.Printf("%s: %s\n", a.Name, moveStyle.Render(cubesync.FormatMoves(a.Moves)))

	if !algoApply {
		return nil
	}

	w, err := openWorkspace(true)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.session.Turns(a.Moves...); err != nil {
		return err
	}
	if err := w.save(); err != nil {
		return err
	}
	fmt.Print(renderNet(w.session.Cube(), -1))
	return nil
}
