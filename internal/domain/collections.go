package domain

import (
	"fmt"
	"sort"
)

// WaypointCollection owns all Waypoint instances for a network.
//
// The collection is kept sorted by identifier after every insertion, and
// identifiers are unique within it: routes reference waypoints through this
// collection, and output formats use the identifier as a foreign key, so a
// duplicate would make those references ambiguous.
type WaypointCollection struct {
	waypoints []*Waypoint
}

// NewWaypointCollection creates an empty waypoint collection.
func NewWaypointCollection() *WaypointCollection {
	return &WaypointCollection{}
}

// Append adds a waypoint to the collection, re-sorting by identifier. A
// waypoint whose identifier is already present is rejected.
func (c *WaypointCollection) Append(w *Waypoint) error {
	if w == nil {
		return fmt.Errorf("waypoint is required: %w", ErrValidation)
	}
	for _, existing := range c.waypoints {
		if existing.Identifier() == w.Identifier() {
			return fmt.Errorf("waypoint identifier %q already present in collection: %w",
				w.Identifier(), ErrValidation)
		}
	}
	c.waypoints = append(c.waypoints, w)
	sort.SliceStable(c.waypoints, func(i, j int) bool {
		return c.waypoints[i].Identifier() < c.waypoints[j].Identifier()
	})
	return nil
}

// Get returns the waypoint with the given feature ID. Used for exact
// cross-referencing when reconstructing routes from storage.
func (c *WaypointCollection) Get(id string) (*Waypoint, error) {
	for _, w := range c.waypoints {
		if w.ID() == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("waypoint with ID %q: %w", id, ErrNotFound)
}

// Lookup returns the waypoint with the given identifier. This is the
// human-facing lookup; collections are small enough that a linear scan is
// fine.
func (c *WaypointCollection) Lookup(identifier string) (*Waypoint, error) {
	for _, w := range c.waypoints {
		if w.Identifier() == identifier {
			return w, nil
		}
	}
	return nil, fmt.Errorf("waypoint with identifier %q: %w", identifier, ErrNotFound)
}

// Waypoints returns all waypoints in identifier order.
func (c *WaypointCollection) Waypoints() []*Waypoint { return c.waypoints }

// Len returns the number of waypoints in the collection.
func (c *WaypointCollection) Len() int { return len(c.waypoints) }

// String renders the collection for inspection output.
func (c *WaypointCollection) String() string {
	return fmt.Sprintf("<WaypointCollection : %d waypoints>", len(c.waypoints))
}

// RouteCollection owns all Route instances for a network. Insertion order is
// preserved; FPL export derives each route's flight-plan index from its
// position here.
type RouteCollection struct {
	routes []*Route
}

// NewRouteCollection creates an empty route collection.
func NewRouteCollection() *RouteCollection {
	return &RouteCollection{}
}

// Append adds a route to the end of the collection.
func (c *RouteCollection) Append(r *Route) error {
	if r == nil {
		return fmt.Errorf("route is required: %w", ErrValidation)
	}
	c.routes = append(c.routes, r)
	return nil
}

// Get returns the route with the given feature ID.
func (c *RouteCollection) Get(id string) (*Route, error) {
	for _, r := range c.routes {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("route with ID %q: %w", id, ErrNotFound)
}

// Routes returns all routes in insertion order.
func (c *RouteCollection) Routes() []*Route { return c.routes }

// Len returns the number of routes in the collection.
func (c *RouteCollection) Len() int { return len(c.routes) }

// String renders the collection for inspection output.
func (c *RouteCollection) String() string {
	return fmt.Sprintf("<RouteCollection : %d routes>", len(c.routes))
}

// Network is the root aggregate: the waypoint and route collections that
// together form one navigational network.
type Network struct {
	Waypoints *WaypointCollection
	Routes    *RouteCollection
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		Waypoints: NewWaypointCollection(),
		Routes:    NewRouteCollection(),
	}
}

// String renders the network for inspection output.
func (n *Network) String() string {
	return fmt.Sprintf("<Network : %d Waypoints - %d Routes>", n.Waypoints.Len(), n.Routes.Len())
}
