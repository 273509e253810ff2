package service

import "bybit_monitor/internal/modules/config"

// Gate — статические allow-листы. Заполняется один раз из конфига,
// дальше только читается, мутаций нет.
type Gate struct {
	balanceIDs  map[string]struct{}
	positionIDs map[string]struct{}
}

func NewGate(cfg *config.Config) *Gate {
	return &Gate{
		balanceIDs:  toSet(cfg.AllowedBalanceIDs),
		positionIDs: toSet(cfg.AllowedPositionIDs),
	}
}

// CanAccessBalance — пустой список закрывает доступ всем, а не открывает.
func (g *Gate) CanAccessBalance(callerID string) bool {
	if len(g.balanceIDs) == 0 {
		return false
	}
	_, ok := g.balanceIDs[callerID]
	return ok
}

func (g *Gate) CanAccessPosition(callerID string) bool {
	if len(g.positionIDs) == 0 {
		return false
	}
	_, ok := g.positionIDs[callerID]
	return ok
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
