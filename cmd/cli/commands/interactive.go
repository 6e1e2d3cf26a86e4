package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var sessionExcluded = map[string]bool{
	"interactive": true,
	"completion":  true,
	"help":        true,
	"serve":       true,
}

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start a session that reuses one database connection and Google login",
		Long: `Start an interactive session where you can run several commands against
the same database connection without re-authenticating with Google.
Quote arguments that contain spaces, e.g. assign ev-1 w-1 "Blackjack Dealer".

Type 'help' to list commands, 'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.Parent(), os.Stdin, os.Stdout)
		},
	}
}

func runSession(root *cobra.Command, in io.Reader, out io.Writer) error {
	// Build command map, skipping ones that make no sense inside a session
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		if !sessionExcluded[sub.Name()] {
			commands[sub.Name()] = sub
		}
	}

	fmt.Fprintf(out, "\nGigStaff session for %s. Type 'help' for commands.\n", root.Name())
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		parts, err := parseCommandLine(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		// Handle built-in commands
		name, cmdArgs := parts[0], parts[1:]
		switch name {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye")
			return nil
		case "help":
			printSessionHelp(out, commands)
			continue
		}

		target, ok := commands[name]
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n\n", name)
			continue
		}
		if err := runInSession(target, cmdArgs); err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// runInSession runs a command's RunE directly so the root PersistentPreRunE
// (config, logger, database) is not repeated
func runInSession(target *cobra.Command, args []string) error {
	// Reset flags left over from the previous run
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		if sv, ok := flag.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
			return
		}
		_ = flag.Value.Set(flag.DefValue)
	})

	// Parse flags and validate args
	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}
	// Execute the command
	if target.RunE != nil {
		return target.RunE(target, args)
	}
	if target.Run != nil {
		target.Run(target, args)
	}
	return nil
}

func printSessionHelp(out io.Writer, commands map[string]*cobra.Command) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "\nCommands:")
	for _, name := range names {
		fmt.Fprintf(out, "  %-45s %s\n", commands[name].Use, commands[name].Short)
	}
	fmt.Fprintf(out, "\n  %-45s %s\n", "help", "Show this list")
	fmt.Fprintf(out, "  %-45s %s\n\n", "exit, quit", "Leave the session")
}

// parseCommandLine splits a line into arguments. Single or double quotes group words.
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	inArg := false

	for _, r := range line {
		switch {
		// Inside quotes everything but the closing quote is literal
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case unicode.IsSpace(r):
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", quote)
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
