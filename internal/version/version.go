// ABOUTME: Version constants for the peerdisco experiment
// ABOUTME: Advertised to peers via the ver TXT property
package version

const (
	// Version is the semantic version of this build.
	Version = "0.2.0"

	// Product is the advertised product name.
	Product = "peerdisco"

	// Manufacturer identifies who built this.
	Manufacturer = "harperreed"
)
