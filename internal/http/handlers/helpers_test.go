package handlers

import (
	"sppt/internal/domain"
	"sppt/internal/scratch"
)

func scratchHint(year, nop string) scratch.Hint {
	return scratch.Hint{Year: year, ParcelID: nop}
}

func (svc *SPPTService) modelFromQueryForTest(params map[string]string) domain.Model {
	now := svc.now().In(svc.Config.Location())
	return domain.BuildModel(params, now, domain.WithDefaultPaymentStatus(svc.Config.Document.DefaultPaymentStatus))
}
