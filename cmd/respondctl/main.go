// respondctl: publishes a response command to the pipeline over NATS.
// Example: respondctl -action Block_IP -target 9.9.9.9 -by analyst
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/nats-io/nats.go"

	"siem-core/pkg/events"
)

var (
	action  = flag.String("action", "", "Action name (Block_IP, Disable_User, Isolate_Host).")
	target  = flag.String("target", "", "Action target (IP, user, or host).")
	by      = flag.String("by", "respondctl", "Requesting identity recorded in the audit history.")
	subject = flag.String("subject", "siem.respond", "NATS subject the pipeline listens on.")
)

func main() {
	flag.Parse()
	if *action == "" || *target == "" {
		flag.Usage()
		os.Exit(2)
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	nc, err := nats.Connect(natsURL)
	if err != nil {
		log.Fatalf("nats connect: %v", err)
	}
	defer nc.Close()

	cmd := events.ResponseCommand{Action: *action, Target: *target, RequestedBy: *by}
	b, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := nc.Publish(*subject, b); err != nil {
		log.Fatalf("publish: %v", err)
	}
	if err := nc.Flush(); err != nil {
		log.Fatalf("flush: %v", err)
	}
	log.Printf("sent %s on %s to %s", *action, *target, *subject)
}
