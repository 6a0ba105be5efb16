package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wellness/internal/constants"
	"github.com/julianstephens/wellness/internal/models"
)

type MoodFormModel struct {
	Mood   string
	Rating int
	Note   string
}

type HydrationFormModel struct {
	Amount string
}

type OnboardingFormModel struct {
	Ready bool
}

type HabitFormModel struct {
	Name   string
	Icon   string
	Target string
	Unit   string
}

type DeleteHabitFormModel struct {
	Confirm bool
}

func NewMoodForm(f *MoodFormModel) *huh.Form {
	opts := make([]huh.Option[string], len(models.MoodOptions))
	for i, o := range models.MoodOptions {
		opts[i] = huh.NewOption(o.Emoji+" "+o.Label, o.Label)
	}
	ratings := []huh.Option[int]{huh.NewOption("Skip", 0)}
	for r := constants.MinMoodRating; r <= constants.MaxMoodRating; r++ {
		ratings = append(ratings, huh.NewOption(strings.Repeat("★", r), r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How are you feeling?").
				Options(opts...).
				Value(&f.Mood),
			huh.NewSelect[int]().
				Title("Rating").
				Options(ratings...).
				Value(&f.Rating),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&f.Note),
		),
	).WithShowHelp(false)
}

func NewHydrationForm(f *HydrationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom amount (ml)").
				Description(fmt.Sprintf("%d-%d ml, in steps of %d",
					constants.MinCustomAmountML, constants.MaxCustomAmountML, constants.CustomAmountStepML)).
				Value(&f.Amount).
				Validate(validateAmount),
		),
	).WithShowHelp(false)
}

func NewOnboardingForm(f *OnboardingFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to wellness").
				Description("Track your habits, log how you feel, and keep up with your water.\n"+
					"Switch tabs with tab, quick-add water with 1-4, and press ? for help."),
			huh.NewConfirm().
				Title("Ready to start?").
				Affirmative("Let's go").
				Negative("Not yet").
				Value(&f.Ready),
		),
	).WithShowHelp(false)
}

func NewHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Icon").
				Value(&f.Icon),
			huh.NewInput().
				Title("Daily target").
				Value(&f.Target).
				Validate(validateTarget),
			huh.NewInput().
				Title("Unit").
				Placeholder("minutes, pages, glasses...").
				Value(&f.Unit),
		),
	).WithShowHelp(false)
}

func NewDeleteHabitForm(name string, f *DeleteHabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", name)).
				Description("Its history is removed too.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&f.Confirm),
		),
	).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateTarget(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("enter a number greater than zero")
	}
	return nil
}

func validateAmount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of ml")
	}
	if n < constants.MinCustomAmountML || n > constants.MaxCustomAmountML {
		return fmt.Errorf("must be between %d and %d ml", constants.MinCustomAmountML, constants.MaxCustomAmountML)
	}
	if n%constants.CustomAmountStepML != 0 {
		return fmt.Errorf("must be a multiple of %d ml", constants.CustomAmountStepML)
	}
	return nil
}
