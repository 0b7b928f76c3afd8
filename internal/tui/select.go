package tui

import (
	"fmt"

	huh "github.com/charmbracelet/huh"

	"github.com/lvezzaro/buildsweep/internal/models"
)

// SelectUnits shows a multi-select over the discovered units and returns the
// chosen subset in the original (lexicographic) order. All units start
// selected. A user abort returns huh.ErrUserAborted.
func SelectUnits(units []*models.Unit) ([]*models.Unit, error) {
	if len(units) == 0 {
		return units, nil
	}

	options := make([]huh.Option[string], len(units))
	for i, unit := range units {
		options[i] = huh.NewOption(fmt.Sprintf("%s  (%s)", unit.Name, unit.RootPath), unit.RootPath).Selected(true)
	}

	var chosen []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select units to sweep").
				Description("Space toggles, enter confirms").
				Options(options...).
				Value(&chosen),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	keep := make(map[string]struct{}, len(chosen))
	for _, path := range chosen {
		keep[path] = struct{}{}
	}

	var selected []*models.Unit
	for _, unit := range units {
		if _, ok := keep[unit.RootPath]; ok {
			selected = append(selected, unit)
		}
	}
	return selected, nil
}
