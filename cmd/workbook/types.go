package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	workbook "github.com/njchilds90/goworkbook"
	"github.com/njchilds90/goworkbook/internal/lessons"
	"github.com/njchilds90/goworkbook/internal/problem"
)

var typesCmd = &cobra.Command{
	Use:   "types [domain]",
	Short: "List problem types in classification order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domains := wb.Domains()
		if len(args) == 1 {
			d, err := problem.ParseDomain(args[0])
			if err != nil {
				return err
			}
			domains = []problem.Domain{d}
		}

		all := map[problem.Domain][]workbook.TypeInfo{}
		for _, d := range domains {
			types, err := wb.Types(d)
			if err != nil {
				return err
			}
			all[d] = types
		}
		if jsonOutput {
			return printJSON(os.Stdout, all)
		}
		for i, d := range domains {
			if i > 0 {
				fmt.Println()
			}
			printTypes(os.Stdout, d, all[d])
		}
		return nil
	},
}

var lessonsCmd = &cobra.Command{
	Use:   "lessons <domain> [step name]",
	Short: "Show the lesson content attached to explanation steps",
	Long: `Without a step name, lists the step names that have dedicated lesson
content in the domain. With one, prints that step's explanations, tips and
hints.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := problem.ParseDomain(args[0])
		if err != nil {
			return err
		}
		cat, err := lessons.Load()
		if err != nil {
			return err
		}
		dom := cat.Domain(d)

		if len(args) == 1 {
			names := dom.TopicNames()
			if jsonOutput {
				return printJSON(os.Stdout, names)
			}
			fmt.Println(cyan(string(d) + " lessons"))
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		}

		name := args[1]
		if !dom.HasTopic(name) {
			return fmt.Errorf("%s has no lesson for step %q (see 'workbook lessons %s')", d, name, d)
		}
		topic := dom.Topic(name)
		if jsonOutput {
			return printJSON(os.Stdout, topic)
		}
		fmt.Println(cyan(name))
		for _, line := range []struct{ label, text string }{
			{"conceptual", topic.Conceptual},
			{"procedural", topic.Procedural},
			{"visual", topic.Visual},
			{"algebraic", topic.Algebraic},
			{"expected", topic.ExpectedResult},
			{"self-check", topic.SelfCheck},
		} {
			if line.text != "" {
				fmt.Printf("  %s %s\n", yellow(line.label+":"), line.text)
			}
		}
		for _, tip := range topic.Tips {
			fmt.Printf("  %s %s\n", green("tip:"), tip)
		}
		for i, h := range topic.Hints {
			fmt.Printf("  %s %s\n", gray(fmt.Sprintf("hint %d:", i+1)), h)
		}
		return nil
	},
}
