package models

type CellKind string

const (
	KindStart          CellKind = "start"
	KindLand           CellKind = "land"
	KindIndustrial     CellKind = "industrial"
	KindInfrastructure CellKind = "infrastructure"
	KindLotto          CellKind = "lotto"
	KindCharity        CellKind = "charity"
	KindChance         CellKind = "chance"
	KindTransportation CellKind = "transportation"
	KindHospital       CellKind = "hospital"
	KindPark           CellKind = "park"
	KindConcert        CellKind = "concert"
	KindUniversity     CellKind = "university"
	KindJail           CellKind = "jail"
)

type PaymentKind string

const (
	P2P PaymentKind = "P2P"
	P2M PaymentKind = "P2M"
	P2G PaymentKind = "P2G"
	G2P PaymentKind = "G2P"
	P2O PaymentKind = "P2O"
	P2C PaymentKind = "P2C"
	M2P PaymentKind = "M2P"
	C2P PaymentKind = "C2P"
	G2M PaymentKind = "G2M"
	P2D PaymentKind = "P2D"
)

// Cost holds the figures a PaymentInfo carries. Which ones are set
// depends on the kind: G2M uses Fixed, P2D uses Overall, every other kind
// uses Default and Additional.
type Cost struct {
	Default    int `json:"default,omitempty"`
	Additional int `json:"additional,omitempty"`
	Fixed      int `json:"fixed,omitempty"`
	Overall    int `json:"overall,omitempty"`
}

type PaymentInfo struct {
	Kind PaymentKind `json:"kind"`
	Cost Cost        `json:"cost"`
}

func NormalPayment(kind PaymentKind, def, additional int) PaymentInfo {
	return PaymentInfo{Kind: kind, Cost: Cost{Default: def, Additional: additional}}
}

func FixedPayment(fixed int) PaymentInfo {
	return PaymentInfo{Kind: G2M, Cost: Cost{Fixed: fixed}}
}

func DistributedPayment(overall int) PaymentInfo {
	return PaymentInfo{Kind: P2D, Cost: Cost{Overall: overall}}
}

// Cell is one of the 54 board squares. Cells are built once by the board
// registry and never mutated.
type Cell struct {
	Id           int           `json:"cellId"`
	Kind         CellKind      `json:"type"`
	Name         string        `json:"name"`
	MaxBuildable int           `json:"maxBuildable"`
	PaymentInfos []PaymentInfo `json:"paymentInfos"`
	// GroupId is zero for cells outside a land price group.
	GroupId int `json:"groupId,omitempty"`
	// Dest is the warp target of a transportation cell.
	Dest int `json:"dest,omitempty"`
}

// Payment returns the first payment info of the given kind.
func (c Cell) Payment(kind PaymentKind) (PaymentInfo, bool) {
	for _, info := range c.PaymentInfos {
		if info.Kind == kind {
			return info, true
		}
	}
	return PaymentInfo{}, false
}
