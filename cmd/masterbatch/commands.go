package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"masterbatch/composition"
	"masterbatch/recipe"
	"masterbatch/slack"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty recipe book if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.EnsureInitialized(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("recipe book ready"))
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.call(cmd, "recipe_list", nil)
			if err != nil {
				return err
			}
			var res struct {
				Recipes []struct {
					Name        string  `json:"name"`
					Base        string  `json:"base"`
					Ingredients int     `json:"ingredients"`
					BaseShare   float64 `json:"base_share"`
				} `json:"recipes"`
			}
			if err := decode(out, &res); err != nil {
				return err
			}
			if len(res.Recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no recipes"))
				return nil
			}

			rows := make([][]string, 0, len(res.Recipes))
			for _, r := range res.Recipes {
				rows = append(rows, []string{r.Name, r.Base, strconv.Itoa(r.Ingredients), pct(r.BaseShare)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Recipe", "Base", "Ingredients", "Base %"}, rows))
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a recipe and its composition check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.call(cmd, "recipe_get", map[string]any{"name": args[0]})
			if err != nil {
				return err
			}
			var res struct {
				Recipe     recipeView     `json:"recipe"`
				Validation validationView `json:"validation"`
			}
			if err := decode(out, &res); err != nil {
				return err
			}

			rows := make([][]string, 0, len(res.Recipe.Ingredients)+1)
			for _, ing := range res.Recipe.Ingredients {
				rows = append(rows, []string{ing.Name, pct(ing.Percentage)})
			}
			rows = append(rows, []string{res.Recipe.Base + " (base)", pct(res.Validation.BaseShare)})

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, titleStyle.Render(res.Recipe.Name))
			fmt.Fprintln(w, renderTable([]string{"Ingredient", "%"}, rows))
			fmt.Fprintln(w, res.Validation.render())
			return nil
		},
	}
}

func newSaveCmd(a *app) *cobra.Command {
	var (
		base        string
		ingredients []string
	)
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Create or replace a recipe",
		Long: `Create or replace a recipe from Name=Percentage pairs.

Example:
  masterbatch save "Red 2%" --base "Base PLA" --ingredient "Red pigment=2" --ingredient "Black=0,5"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([]any, 0, len(ingredients))
			for _, s := range ingredients {
				e, err := recipe.ParseDraftEntry(s)
				if err != nil {
					return err
				}
				rows = append(rows, map[string]any{"name": e.Name, "percentage": e.Value})
			}
			input := map[string]any{"name": args[0], "ingredients": rows}
			if base != "" {
				input["base"] = base
			}

			out, err := a.call(cmd, "recipe_save", input)
			if err != nil {
				return err
			}
			var res struct {
				Recipe     recipeView     `json:"recipe"`
				Validation validationView `json:"validation"`
			}
			if err := decode(out, &res); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("saved %q (%d ingredients, base %s)", res.Recipe.Name, len(res.Recipe.Ingredients), res.Recipe.Base)))
			fmt.Fprintln(cmd.OutOrStdout(), res.Validation.render())
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base material filling the remainder (default from MASTERBATCH_DEFAULT_BASE)")
	cmd.Flags().StringArrayVarP(&ingredients, "ingredient", "i", nil, "ingredient as Name=Percentage, repeatable")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %q without --yes", args[0])
			}
			if _, err := a.call(cmd, "recipe_delete", map[string]any{"name": args[0]}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("deleted %q", args[0])))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func newCalcCmd(a *app) *cobra.Command {
	var (
		weight string
		noBase bool
		notify bool
	)
	cmd := &cobra.Command{
		Use:   "calc NAME",
		Short: "Compute ingredient weights for a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.call(cmd, "weights_calculate", map[string]any{
				"name":         args[0],
				"total_weight": weight,
				"include_base": !noBase,
			})
			if err != nil {
				return err
			}
			var res struct {
				Recipe      string             `json:"recipe"`
				TotalWeight float64            `json:"total_weight"`
				Lines       []composition.Line `json:"lines"`
				Totals      composition.Totals `json:"totals"`
				Validation  validationView     `json:"validation"`
			}
			if err := decode(out, &res); err != nil {
				return err
			}

			rows := make([][]string, 0, len(res.Lines)+1)
			for _, l := range res.Lines {
				name := l.Name
				if l.Base {
					name += " (base)"
				}
				rows = append(rows, []string{name, pct(l.Percentage), grams(l.Weight)})
			}
			rows = append(rows, []string{"Total", pct(res.Totals.Percentage), grams(res.Totals.Weight)})

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s: %s g", res.Recipe, grams(res.TotalWeight))))
			fmt.Fprintln(w, renderTable([]string{"Ingredient", "%", "g"}, rows))
			fmt.Fprintln(w, res.Validation.render())

			if !notify {
				return nil
			}
			if a.notifier == nil {
				fmt.Fprintln(w, warnStyle.Render("not notified: MASTERBATCH_SLACK_WEBHOOK_URL is not set"))
				return nil
			}
			msg := slack.CalculationMessage(res.Recipe, res.TotalWeight, res.Lines)
			if err := a.notifier.PostMessage(cmd.Context(), a.cfg.Notify.SlackChannel, msg); err != nil {
				return fmt.Errorf("notify: %w", err)
			}
			fmt.Fprintln(w, okStyle.Render("posted to Slack"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&weight, "weight", "w", "", "total batch weight in grams")
	cmd.Flags().BoolVar(&noBase, "no-base", false, "leave the base out and report an incomplete composition")
	cmd.Flags().BoolVar(&notify, "notify", false, "post the result to the configured Slack webhook")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}
