package tumble

import "github.com/akmonengine/tumble/actor"

// Energy is a diagnostic snapshot of a group of bodies
type Energy struct {
	Kinetic   float64
	Potential float64
}

func (e Energy) Total() float64 {
	return e.Kinetic + e.Potential
}

// Energy sums the kinetic and potential energies of the bodies. The
// potential is measured from the origin of the up axis. Faulted bodies are
// ignored.
func (w *World) Energy(bodies []*actor.RigidBody) Energy {
	var e Energy
	for _, body := range bodies {
		if body.Err() != nil {
			continue
		}
		e.Kinetic += body.KineticEnergy()
		e.Potential += body.PotentialEnergy(w.Forces.Gravity, w.Forces.Up)
	}
	return e
}
