package main

import (
	"fmt"
	"strings"

	"github.com/lox/holdemsim/internal/config"
	"github.com/lox/holdemsim/internal/participant"
)

// parseAgent turns a command line agent identifier into a seat. Accepted
// forms are a built-in kind (console, call, random, equity), a script
// ("scripted:100,300/0/0/0") or a websocket URL for a remote agent. A
// "name=" prefix names the seat.
func parseAgent(id string, seat int) (config.SeatConfig, error) {
	name := ""
	if before, after, ok := strings.Cut(id, "="); ok && !strings.Contains(before, ":") {
		name, id = before, after
	}

	var sc config.SeatConfig
	switch {
	case strings.HasPrefix(id, "ws://"), strings.HasPrefix(id, "wss://"),
		strings.HasPrefix(id, "http://"), strings.HasPrefix(id, "https://"):
		sc = config.SeatConfig{Kind: participant.KindRemote, URL: id}
	case strings.HasPrefix(id, participant.KindScripted+":"):
		bets, err := participant.ParseScript(strings.TrimPrefix(id, participant.KindScripted+":"))
		if err != nil {
			return config.SeatConfig{}, err
		}
		sc = config.SeatConfig{Kind: participant.KindScripted, Bets: &config.BetsConfig{
			Deal: bets.Deal, Flop: bets.Flop, Turn: bets.Turn, River: bets.River,
		}}
	case participant.Known(id) && id != participant.KindRemote:
		sc = config.SeatConfig{Kind: id}
	default:
		return config.SeatConfig{}, fmt.Errorf("unknown agent %q (want one of console, call, random, equity, scripted:BETS or a ws:// url)", id)
	}

	if name == "" {
		name = fmt.Sprintf("%s-%d", sc.Kind, seat)
	}
	sc.Name = name
	return sc, nil
}

// seatsFromArgs replaces the configured seats when agents are given
func seatsFromArgs(cfg *config.Config, agents []string) error {
	if len(agents) == 0 {
		return nil
	}
	seats := make([]config.SeatConfig, len(agents))
	for i, id := range agents {
		sc, err := parseAgent(id, i)
		if err != nil {
			return err
		}
		seats[i] = sc
	}
	cfg.Seats = seats
	return nil
}
