package deckconfigs

import (
	"time"

	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/configs"
	"github.com/reusee/taideck/vars"
)

// RenderBudget caps the wall time of a single component execution.
// Zero means no cap.
type RenderBudget time.Duration

var renderBudgetFlag = cmds.Var[int]("-render-budget-ms")

func (Module) RenderBudget(
	loader configs.Loader,
) RenderBudget {
	ms := vars.FirstNonZero(
		*renderBudgetFlag,
		configs.First[int](loader, "render_budget_ms"),
	)
	return RenderBudget(time.Duration(ms) * time.Millisecond)
}
