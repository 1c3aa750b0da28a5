package engine

import (
	"github.com/DedS3t/twoworlds-backend/app/models"
	"github.com/DedS3t/twoworlds-backend/platform/board"
	"github.com/DedS3t/twoworlds-backend/pkg/ledger"
)

// RentCoefficient is 2 × the smallest built count of the land's group when
// every member is owned and built, and 1 otherwise.
func RentCoefficient(reg *board.Registry, state models.GameState, cell models.Cell) int {
	members := reg.GroupMembers(cell.GroupId)
	if len(members) == 0 {
		return 1
	}
	minimum := -1
	for _, id := range members {
		idx := state.PropertyIndex(id)
		if idx < 0 || state.Properties[idx].BuiltCount < 1 {
			return 1
		}
		if built := state.Properties[idx].BuiltCount; minimum < 0 || built < minimum {
			minimum = built
		}
	}
	return 2 * minimum
}

func optionalCost(cell models.Cell, kind models.PaymentKind) int {
	info, ok := cell.Payment(kind)
	if !ok {
		return 0
	}
	return info.Cost.Additional
}

func defaultCost(cell models.Cell, kind models.PaymentKind) int {
	info, ok := cell.Payment(kind)
	if !ok {
		return 0
	}
	return info.Cost.Default
}

func legs(ls []ledger.Ledger) *ledger.Ledger {
	if len(ls) == 0 {
		return nil
	}
	merged := ledger.MergeAll(ls...)
	return &merged
}

// Invoice computes the payments owed by the player at idx for standing on
// cell. The returned state differs from state only when a discount ticket
// was consumed.
func Invoice(reg *board.Registry, state models.GameState, idx int, cell models.Cell) (models.GameState, models.PaymentInvoice) {
	out := state.Clone()
	player := out.Players[idx]
	invoice := models.PaymentInvoice{CellId: cell.Id}
	var mandatory, optional []ledger.Ledger

	propIdx := out.PropertyIndex(cell.Id)
	owned := propIdx >= 0
	ownerIcon := -1
	if owned {
		if i := out.PlayerIndex(out.Properties[propIdx].OwnerId); i >= 0 {
			ownerIcon = out.Players[i].Icon
		} else {
			owned = false
		}
	}

	switch cell.Kind {
	case models.KindLand:
		switch {
		case !owned:
			optional = append(optional, ledger.P2G(player.Icon, defaultCost(cell, models.P2G)))
		case ownerIcon != player.Icon:
			rent := optionalCost(cell, models.P2O) * RentCoefficient(reg, out, cell)
			if out.Sidecars.LimitRentsTurnsRemaining > 0 {
				rent = 0
			} else if player.Tickets.DiscountRent > 0 {
				rent /= 2
				out.Players[idx].Tickets.DiscountRent--
			}
			if rent > 0 {
				mandatory = append(mandatory, ledger.P2P(player.Icon, ownerIcon, rent))
			}
		case out.Properties[propIdx].BuiltCount < cell.MaxBuildable:
			optional = append(optional, ledger.Unidirectional(player.Icon, -ConstructionCost))
		}
	case models.KindIndustrial:
		switch {
		case !owned:
			optional = append(optional, ledger.P2G(player.Icon, defaultCost(cell, models.P2G)))
		case ownerIcon != player.Icon:
			info, _ := cell.Payment(models.P2D)
			others := len(out.Players) - 1
			if others > 0 {
				share := info.Cost.Overall / others
				for _, other := range out.Players {
					if other.Icon != player.Icon {
						mandatory = append(mandatory, ledger.P2P(player.Icon, other.Icon, share))
					}
				}
			}
		}
	case models.KindInfrastructure:
		// Construction only; landing is a notification.
	case models.KindLotto:
		optional = append(optional, ledger.Unidirectional(player.Icon, -optionalCost(cell, models.P2M)))
	case models.KindCharity:
		mandatory = append(mandatory, ledger.P2C(player.Icon, defaultCost(cell, models.P2C)))
	case models.KindHospital:
		for _, info := range cell.PaymentInfos {
			switch info.Kind {
			case models.G2M:
				mandatory = append(mandatory, ledger.G2M(info.Cost.Fixed))
			case models.P2M:
				mandatory = append(mandatory, ledger.Unidirectional(player.Icon, -info.Cost.Default))
			}
		}
	case models.KindConcert:
		for _, info := range cell.PaymentInfos {
			switch info.Kind {
			case models.P2M:
				mandatory = append(mandatory, ledger.Unidirectional(player.Icon, -info.Cost.Default))
			case models.P2G:
				mandatory = append(mandatory, ledger.P2G(player.Icon, info.Cost.Default))
			case models.P2C:
				mandatory = append(mandatory, ledger.P2C(player.Icon, info.Cost.Default))
			}
		}
	case models.KindJail:
		optional = append(optional, ledger.Unidirectional(player.Icon, -optionalCost(cell, models.P2M)))
	}

	invoice.Mandatory = legs(mandatory)
	invoice.Optional = legs(optional)
	return out, invoice
}

// Settle pays an invoice for the player at idx. Accepting the optional leg
// on a land or industrial cell buys it when unowned and builds one more
// unit when the player already owns it.
func Settle(reg *board.Registry, state models.GameState, idx int, invoice models.PaymentInvoice, acceptOptional bool) models.GameState {
	out := state.Clone()
	if invoice.Mandatory != nil {
		out = ApplyLedger(out, *invoice.Mandatory)
	}
	if !acceptOptional || invoice.Optional == nil {
		return out
	}
	out = ApplyLedger(out, *invoice.Optional)

	cell := reg.Cell(invoice.CellId)
	if cell.Kind != models.KindLand && cell.Kind != models.KindIndustrial {
		return out
	}
	playerId := out.Players[idx].Id
	propIdx := out.PropertyIndex(cell.Id)
	switch {
	case propIdx < 0:
		out.Properties = append(out.Properties, models.Property{OwnerId: playerId, CellId: cell.Id, BuiltCount: 1})
	case out.Properties[propIdx].OwnerId == playerId && out.Properties[propIdx].BuiltCount < cell.MaxBuildable:
		out.Properties[propIdx].BuiltCount++
	}
	return out
}
