package board

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/DedS3t/twoworlds-backend/app/models"
	"gopkg.in/yaml.v3"
)

const Size = 54

const (
	GroupPriceUnit      = 100000
	IndustrialOverall   = 300000
	IndustrialPrice     = 600000
	InfrastructureCost  = 300000
	LottoCost           = 200000
	CharityCost         = 600000
	HospitalPayout      = 100000
	HospitalCost        = 100000
	JailBuyOut          = 400000
	ConcertLeg          = 200000
	defaultChanceName   = "Chance"
	defaultTransitName  = "Public Transit"
	defaultUnknownGroup = 0
)

var infrastructureNames = map[string]string{
	"water":       "Water Works",
	"electricity": "Power Grid",
	"gas":         "City Gas",
}

var industrialNames = map[string]string{
	"agriculture":     "Agricultural Complex",
	"digital-complex": "Digital Complex",
	"factory":         "Industrial Park",
}

//go:embed board.yaml
var boardYAML []byte

type cellEntry struct {
	CellId  int    `yaml:"cellId"`
	Type    string `yaml:"type"`
	Name    string `yaml:"name"`
	Key     string `yaml:"key"`
	GroupId int    `yaml:"groupId"`
	Dest    int    `yaml:"dest"`
}

type boardFile struct {
	Cells []cellEntry `yaml:"cells"`
}

// Registry is the immutable catalog of board cells, indexed by cell id.
type Registry struct {
	cells  [Size]models.Cell
	groups map[int][]int
}

// LoadProperties parses the embedded board table.
func LoadProperties() (*Registry, error) {
	return Parse(boardYAML)
}

func MustLoad() *Registry {
	r, err := LoadProperties()
	if err != nil {
		panic(err)
	}
	return r
}

func Parse(raw []byte) (*Registry, error) {
	var file boardFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("board.yaml: %w", err)
	}
	if len(file.Cells) != Size {
		return nil, fmt.Errorf("board.yaml: expected %d cells, got %d", Size, len(file.Cells))
	}
	sort.Slice(file.Cells, func(i, j int) bool { return file.Cells[i].CellId < file.Cells[j].CellId })

	r := &Registry{groups: make(map[int][]int)}
	for i, entry := range file.Cells {
		if entry.CellId != i {
			return nil, fmt.Errorf("board.yaml: cell ids must cover 0..%d exactly, found %d at position %d", Size-1, entry.CellId, i)
		}
		cell, err := buildCell(entry)
		if err != nil {
			return nil, err
		}
		r.cells[i] = cell
		if cell.GroupId != defaultUnknownGroup {
			r.groups[cell.GroupId] = append(r.groups[cell.GroupId], cell.Id)
		}
	}
	return r, nil
}

func buildCell(e cellEntry) (models.Cell, error) {
	c := models.Cell{Id: e.CellId, Kind: models.CellKind(e.Type), Name: e.Name}
	switch c.Kind {
	case models.KindLand:
		if e.GroupId <= 0 {
			return c, fmt.Errorf("board.yaml: land cell %d has no group", e.CellId)
		}
		price := e.GroupId * GroupPriceUnit
		c.GroupId = e.GroupId
		c.MaxBuildable = 3
		c.PaymentInfos = []models.PaymentInfo{
			models.NormalPayment(models.P2O, 0, price),
			models.NormalPayment(models.P2G, price, 0),
		}
	case models.KindIndustrial:
		c.Name = industrialNames[e.Key]
		c.MaxBuildable = 1
		c.PaymentInfos = []models.PaymentInfo{
			models.DistributedPayment(IndustrialOverall),
			models.NormalPayment(models.P2G, IndustrialPrice, 0),
		}
	case models.KindInfrastructure:
		c.Name = infrastructureNames[e.Key]
		c.PaymentInfos = []models.PaymentInfo{models.NormalPayment(models.P2G, InfrastructureCost, 0)}
	case models.KindLotto:
		c.PaymentInfos = []models.PaymentInfo{models.NormalPayment(models.P2M, 0, LottoCost)}
	case models.KindCharity:
		c.PaymentInfos = []models.PaymentInfo{models.NormalPayment(models.P2C, CharityCost, 0)}
	case models.KindHospital:
		c.PaymentInfos = []models.PaymentInfo{
			models.FixedPayment(HospitalPayout),
			models.NormalPayment(models.P2M, HospitalCost, 0),
		}
	case models.KindJail:
		c.PaymentInfos = []models.PaymentInfo{models.NormalPayment(models.P2M, 0, JailBuyOut)}
	case models.KindConcert:
		c.PaymentInfos = []models.PaymentInfo{
			models.NormalPayment(models.P2M, ConcertLeg, 0),
			models.NormalPayment(models.P2G, ConcertLeg, 0),
			models.NormalPayment(models.P2C, ConcertLeg, 0),
		}
	case models.KindTransportation:
		if e.Dest < 0 || e.Dest >= Size || e.Dest == e.CellId {
			return c, fmt.Errorf("board.yaml: transportation cell %d has bad dest %d", e.CellId, e.Dest)
		}
		c.Name = defaultTransitName
		c.Dest = e.Dest
	case models.KindChance:
		c.Name = defaultChanceName
	case models.KindStart, models.KindPark, models.KindUniversity:
	default:
		return c, fmt.Errorf("board.yaml: cell %d has unknown type %q", e.CellId, e.Type)
	}
	if c.PaymentInfos == nil {
		c.PaymentInfos = []models.PaymentInfo{}
	}
	return c, nil
}

func (r *Registry) GetByPos(pos int) (models.Cell, error) {
	if pos < 0 || pos >= Size {
		return models.Cell{}, fmt.Errorf("no cell at position %d", pos)
	}
	return cloneCell(r.cells[pos]), nil
}

// Cell returns the cell at pos taken modulo the board size.
func (r *Registry) Cell(pos int) models.Cell {
	return cloneCell(r.cells[Wrap(pos)])
}

func (r *Registry) Cells() []models.Cell {
	out := make([]models.Cell, Size)
	for i, c := range r.cells {
		out[i] = cloneCell(c)
	}
	return out
}

// cloneCell copies the payment infos so callers cannot reach the registry.
func cloneCell(c models.Cell) models.Cell {
	infos := make([]models.PaymentInfo, len(c.PaymentInfos))
	copy(infos, c.PaymentInfos)
	c.PaymentInfos = infos
	return c
}

// GroupMembers lists the cell ids of a land price group in ascending order.
func (r *Registry) GroupMembers(groupId int) []int {
	return append([]int(nil), r.groups[groupId]...)
}

// FirstOfKind returns the lowest-id cell of kind.
func (r *Registry) FirstOfKind(kind models.CellKind) (models.Cell, bool) {
	for _, c := range r.cells {
		if c.Kind == kind {
			return cloneCell(c), true
		}
	}
	return models.Cell{}, false
}

// Wrap reduces pos into 0..Size-1, also for negative positions.
func Wrap(pos int) int {
	pos %= Size
	if pos < 0 {
		pos += Size
	}
	return pos
}
