package collector

import (
	"fmt"
	"math/rand"
	"time"

	"siem-core/pkg/events"
)

// CloudCollector simulates cloud provider audit trails (AWS/Azure/GCP).
type CloudCollector struct {
	interval  time.Duration
	rng       *rand.Rand
	providers []string
	actions   []string
	regions   []string
}

func NewCloudCollector(interval time.Duration) *CloudCollector {
	if interval <= 0 {
		interval = 8 * time.Second
	}
	return &CloudCollector{
		interval:  interval,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		providers: []string{"AWS", "Azure", "GCP"},
		actions:   []string{"ConsoleLogin", "CreateBucket", "DeleteVM", "UpdateSecurityGroup", "GetSecret"},
		regions:   []string{"us-east-1", "eu-west-1", "ap-south-1"},
	}
}

func (c *CloudCollector) Name() string            { return "Cloud_Audit" }
func (c *CloudCollector) SourceType() string      { return events.SourceCloud }
func (c *CloudCollector) Interval() time.Duration { return c.interval }

func (c *CloudCollector) Collect() ([]events.RawEvent, error) {
	// 40% chance per cycle.
	if c.rng.Float64() <= 0.6 {
		return nil, nil
	}
	action := c.actions[c.rng.Intn(len(c.actions))]
	identity := "devops-user"
	if action == "ConsoleLogin" {
		identity = "root_account"
	}
	log := events.RawEvent{
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"provider":      c.providers[c.rng.Intn(len(c.providers))],
		"event_name":    action,
		"region":        c.regions[c.rng.Intn(len(c.regions))],
		"source_ip":     fmt.Sprintf("203.0.113.%d", 1+c.rng.Intn(255)),
		"user_identity": identity,
	}
	return []events.RawEvent{log}, nil
}
