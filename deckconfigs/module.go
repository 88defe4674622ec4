package deckconfigs

import (
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}
