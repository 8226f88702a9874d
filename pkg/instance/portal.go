package instance

import (
	"fmt"

	"github.com/JoeJoeTV/picture-perfector/pkg/core"
	"github.com/JoeJoeTV/picture-perfector/pkg/texture"
)

// maskThreshold is the luminance above which a portal's optional mask
// texture is considered "open" at a given surface point.
const maskThreshold = 0.5

// PortalLink pairs exactly two portal instances: a ray hitting one emerges
// from the other, transformed by the registered per-portal transform. An
// optional Mask restricts teleportation to the bright region of a texture —
// where the mask is absent or bright enough the surface is fully
// transparent to through-traffic; elsewhere it behaves as an ordinary
// opaque hit.
type PortalLink struct {
	Mask texture.ColorSource

	first, second portalEnd
}

type portalEnd struct {
	instance  *Instance
	transform *core.Transform
}

// RegisterPortal attaches instance as one of this link's two portals, with
// the transform that maps a point/direction arriving at it into the space
// of its counterpart. Panics if a third instance tries to register, since a
// link can only ever join two portals.
func (p *PortalLink) RegisterPortal(inst *Instance, transform *core.Transform) {
	switch {
	case p.first.instance == nil:
		p.first = portalEnd{instance: inst, transform: transform}
	case p.second.instance == nil:
		p.second = portalEnd{instance: inst, transform: transform}
	default:
		panic(fmt.Sprintf("instance: a third instance %p tried to register with a portal link that already holds two", inst))
	}
}

// ShouldTeleport reports whether a hit at uv on portal should continue
// through the portal (true) or be treated as an opaque surface (false).
// With no mask configured every hit teleports, matching the unmasked
// original behavior.
func (p *PortalLink) ShouldTeleport(uv [2]float64) bool {
	if p.Mask == nil {
		return true
	}
	return p.Mask.Evaluate(uv, core.Zero).Luminance() > maskThreshold
}

// TeleportedRay maps an incoming world-space ray arriving at portal's
// surface point origin into the counterpart portal's space, incrementing
// the ray's depth so integrators still bound total bounces across a
// teleport. If the counterpart has no registered transform the ray passes
// through unchanged.
func (p *PortalLink) TeleportedRay(portal *Instance, incoming core.Ray, origin core.Vec3) core.Ray {
	var dest portalEnd
	switch portal {
	case p.first.instance:
		dest = p.second
	case p.second.instance:
		dest = p.first
	default:
		panic("instance: TeleportedRay called with an instance not registered on this link")
	}

	if dest.transform == nil {
		return core.NewRay(incoming.Origin, incoming.Direction).WithDepth(incoming.Depth + 1)
	}
	newOrigin := dest.transform.Apply(origin)
	newDirection := dest.transform.ApplyVector(incoming.Direction).Normalize()
	return core.NewRay(newOrigin, newDirection).WithDepth(incoming.Depth + 1)
}
