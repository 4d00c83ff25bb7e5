package service

import (
	"context"

	"aforo/pkg/capacity"
	"aforo/pkg/congruence"
	"aforo/pkg/datastructure"
	"aforo/pkg/pipeline"

	"github.com/twpayne/go-polyline"
)

type Driver interface {
	RouteOne(ctx context.Context, originZone, destZone string, tripsPerson int) (*pipeline.Row, error)
}

type RoutingService struct {
	driver Driver
	g      *datastructure.Graph
}

func NewRoutingService(driver Driver, g *datastructure.Graph) *RoutingService {
	return &RoutingService{driver: driver, g: g}
}

// ODRouteResult is the one-shot query view of a pipeline row.
type ODRouteResult struct {
	Origin           string    `json:"origin"`
	Destination      string    `json:"destination"`
	TripsPerson      int       `json:"trips_person"`
	Intrazonal       bool      `json:"intrazonal"`
	MCDistanceM      *float64  `json:"mc_distance_m"`
	MC2DistanceM     *float64  `json:"mc2_distance_m"`
	SenseCode        string    `json:"sense_code"`
	PassesCheckpoint bool      `json:"mc2_passes_checkpoint_link"`
	CongruenceID     int       `json:"congruence_id"`
	CongruenceLabel  string    `json:"congruence_label"`
	CongruenceReason string    `json:"congruence_reason"`
	Veh              []float64 `json:"veh"`
	VehTotal         float64   `json:"veh_total"`
	PathPolyline     string    `json:"path,omitempty"`
}

func (s *RoutingService) RouteOD(ctx context.Context, originZone, destZone string, tripsPerson int) (*ODRouteResult, error) {
	row, err := s.driver.RouteOne(ctx, originZone, destZone, tripsPerson)
	if err != nil {
		return nil, err
	}

	res := &ODRouteResult{
		Origin:           row.OriginZone,
		Destination:      row.DestZone,
		TripsPerson:      row.TripsPerson,
		Intrazonal:       row.Intrazonal,
		SenseCode:        row.Sense.Code(),
		PassesCheckpoint: row.PassesCheckpoint,
		CongruenceID:     row.CongruenceID,
		CongruenceLabel:  congruence.Label(row.CongruenceID),
		CongruenceReason: congruence.ClassReason(row.CongruenceID, row.Potential),
		Veh:              make([]float64, capacity.NumCategories),
		VehTotal:         row.Veh.Total,
	}
	copy(res.Veh, row.Veh.Veh[:])

	if row.MCLength.Valid {
		v := row.MCLength.Value
		res.MCDistanceM = &v
	}
	if row.MC2Length.Valid {
		v := row.MC2Length.Value
		res.MC2DistanceM = &v
	}
	if len(row.MC2Path) > 0 {
		res.PathPolyline = s.renderPath(row.MC2Path)
	}
	return res, nil
}

func (s *RoutingService) renderPath(path []int32) string {
	coords := make([][]float64, 0, len(path))
	for _, nodeID := range path {
		node := s.g.GetNode(nodeID)
		coords = append(coords, []float64{node.Lat, node.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
