package usecase

import (
	"go.uber.org/fx"

	"github.com/uragrafica/printflow/internal/board"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewBoardUseCase,
	NewImportUseCase,
	func() board.NextNumberFunc { return NextNumber },
)
