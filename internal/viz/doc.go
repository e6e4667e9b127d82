// Package viz is the terminal front end of the lab.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live lab view, one lab frame per tick
//   - [Canvas]: Braille canvas the scene is rasterised onto by [Render]
//   - [RunInteractive]: species and scenario menu in front of the live view
//
// # Key Bindings
//
//	1-7 - Add CO, CO2, N2, O2, NO2, H2O or NH3
//	I   - Emit an infrared photon
//	M   - Emit a microwave photon
//	P   - Emit a broadband photon
//	R   - Reset the lab
//	T   - Cycle color themes
//	?   - Show help overlay
package viz
