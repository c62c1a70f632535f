package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/openfab-labs/gridforge/internal/cli/output"
	"github.com/openfab-labs/gridforge/internal/storegen"
)

// NewStoreCommand generates a latch-based storage module in Verilog.
func NewStoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store [rows] [cols]",
		Short: "Generate a latch-based Verilog storage module",
		Long: `Generates Verilog for a rows-by-columns storage array built from
GF180MCU latq cells: one data input per row, one capture input per column,
one latch per bit. With no arguments the geometry is prompted for
interactively.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := setup(cmd)
			if err != nil {
				return err
			}

			rows, cols, err := storeGeometry(cmd, args)
			if err != nil {
				return err
			}
			if err := storegen.Validate(rows, cols); err != nil {
				return err
			}

			path, err := storegen.WriteModule(cc.Cfg.OutDir, rows, cols)
			if err != nil {
				return err
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]any{
					"module": storegen.ModuleName(rows, cols),
					"rows":   rows,
					"cols":   cols,
					"bits":   rows * cols,
					"file":   path,
				})
			}

			cc.Renderer.Success(fmt.Sprintf("wrote %s (%d bits)", path, rows*cols))
			cc.Renderer.Println("")
			cc.Renderer.Println(storegen.InstantiationExample(rows, cols))
			return nil
		},
	}
	return cmd
}

// storeGeometry resolves rows and columns from the positional arguments, or
// prompts for them when none were given.
func storeGeometry(cmd *cobra.Command, args []string) (rows, cols int, err error) {
	switch len(args) {
	case 2:
		rows, err = strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid row count %q", args[0])
		}
		cols, err = strconv.Atoi(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid column count %q", args[1])
		}
		return rows, cols, nil
	case 1:
		return 0, 0, fmt.Errorf("expected both rows and columns, got only %q", args[0])
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "Number of rows: ",
		Stdin:  readline.NewCancelableStdin(cmd.InOrStdin()),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open prompt: %w", err)
	}
	defer rl.Close()

	rows, err = promptInt(rl, "Number of rows: ")
	if err != nil {
		return 0, 0, err
	}
	cols, err = promptInt(rl, "Number of columns: ")
	if err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

func promptInt(rl *readline.Instance, prompt string) (int, error) {
	rl.SetPrompt(prompt)
	line, err := rl.Readline()
	if err != nil {
		return 0, fmt.Errorf("prompt aborted: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", strings.TrimSpace(line))
	}
	return n, nil
}
