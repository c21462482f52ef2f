package instance

import "github.com/angelmondragon/secondnest/pkg/env"

// GetID returns the process instance identifier used in logs and lock owners.
func GetID() string {
	return env.First("local", "SECONDNEST_INSTANCE_ID", "DYNO", "HOSTNAME")
}
