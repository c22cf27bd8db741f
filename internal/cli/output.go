package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case RoomInfo:
		o.printRoomInfo(v)
	case Pool:
		o.printPool(v)
	case VoteStatus:
		o.printVoteStatus(v)
	case []Champion:
		o.printChampions(v)
	case Champion:
		o.printChampion(v)
	case CatalogStatus:
		o.printCatalogStatus(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Team       string    `json:"team"`
	Ban        string    `json:"ban,omitempty"`
	IsHost     bool      `json:"is_host"`
	JoinedAt   time.Time `json:"joined_at"`
	LastActive time.Time `json:"last_active"`
}

// Pool response type
type Pool struct {
	Team1          []string  `json:"team1"`
	Team2          []string  `json:"team2"`
	DatasetVersion string    `json:"dataset_version"`
	RolledAt       time.Time `json:"rolled_at"`
}

// VoteTally response type
type VoteTally struct {
	Channel  string   `json:"channel"`
	Votes    int      `json:"votes"`
	Eligible int      `json:"eligible"`
	Needed   int      `json:"needed"`
	Ready    bool     `json:"ready"`
	Voters   []string `json:"voters,omitempty"`
}

// VoteStatus response type
type VoteStatus struct {
	Global VoteTally `json:"global"`
	Team1  VoteTally `json:"team1"`
	Team2  VoteTally `json:"team2"`
}

// RoomInfo response type
type RoomInfo struct {
	RoomID         string `json:"room_id"`
	GameName       string `json:"game_name"`
	HostName       string `json:"host_name"`
	HasPassword    bool   `json:"has_password"`
	PlayerCount    int    `json:"player_count"`
	DatasetVersion string `json:"dataset_version,omitempty"`
}

// Room response type
type Room struct {
	RoomID         string     `json:"room_id"`
	GameName       string     `json:"game_name"`
	HostID         string     `json:"host_id"`
	HostName       string     `json:"host_name"`
	HasPassword    bool       `json:"has_password"`
	CreatedAt      time.Time  `json:"created_at"`
	DatasetVersion string     `json:"dataset_version,omitempty"`
	Players        []Player   `json:"players"`
	Pool           *Pool      `json:"pool,omitempty"`
	Votes          VoteStatus `json:"votes"`
}

// Champion response type
type Champion struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"icon_url"`
}

// CatalogStatus response type
type CatalogStatus struct {
	Loaded    bool   `json:"loaded"`
	Version   string `json:"version,omitempty"`
	Champions int    `json:"champions"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.RoomID)
	fmt.Printf("Game: %s\n", r.GameName)
	fmt.Printf("Host: %s (%s)\n", r.HostName, r.HostID)
	if r.HasPassword {
		fmt.Println("Password protected: yes")
	}
	if r.DatasetVersion != "" {
		fmt.Printf("Dataset: %s\n", r.DatasetVersion)
	}

	fmt.Printf("Players (%d):\n", len(r.Players))
	for _, team := range []string{"team1", "team2"} {
		fmt.Printf("  %s:\n", team)
		for _, p := range r.Players {
			if p.Team != team {
				continue
			}
			hostStr := ""
			if p.IsHost {
				hostStr = " [host]"
			}
			banStr := ""
			if p.Ban != "" {
				banStr = fmt.Sprintf(" (ban: %s)", p.Ban)
			}
			fmt.Printf("    - %s (%s)%s%s\n", p.Name, p.ID, banStr, hostStr)
		}
	}

	if r.Pool != nil && (len(r.Pool.Team1) > 0 || len(r.Pool.Team2) > 0) {
		fmt.Println("Pools:")
		fmt.Printf("  team1: %s\n", strings.Join(r.Pool.Team1, ", "))
		fmt.Printf("  team2: %s\n", strings.Join(r.Pool.Team2, ", "))
	}

	o.printVoteStatus(r.Votes)
}

func (o *Output) printRoomInfo(info RoomInfo) {
	fmt.Printf("Room: %s\n", info.RoomID)
	fmt.Printf("Game: %s\n", info.GameName)
	fmt.Printf("Host: %s\n", info.HostName)
	passStr := "no"
	if info.HasPassword {
		passStr = "yes"
	}
	fmt.Printf("Password protected: %s\n", passStr)
	fmt.Printf("Players: %d\n", info.PlayerCount)
}

func (o *Output) printPool(p Pool) {
	fmt.Printf("Rolled at: %s (dataset %s)\n", p.RolledAt.Format(time.RFC3339), p.DatasetVersion)
	fmt.Printf("team1: %s\n", strings.Join(p.Team1, ", "))
	fmt.Printf("team2: %s\n", strings.Join(p.Team2, ", "))
}

func (o *Output) printVoteStatus(s VoteStatus) {
	fmt.Println("Reroll votes:")
	for _, t := range []VoteTally{s.Global, s.Team1, s.Team2} {
		readyStr := ""
		if t.Ready {
			readyStr = " [quorum reached]"
		}
		fmt.Printf("  %s: %d/%d (need %d)%s\n", t.Channel, t.Votes, t.Eligible, t.Needed, readyStr)
	}
}

func (o *Output) printChampions(champions []Champion) {
	fmt.Printf("Champions (%d):\n", len(champions))
	for _, c := range champions {
		fmt.Printf("  %s - %s\n", c.ID, c.Name)
	}
}

func (o *Output) printChampion(c Champion) {
	fmt.Printf("Champion: %s\n", c.Name)
	fmt.Printf("ID: %s\n", c.ID)
	fmt.Printf("Icon: %s\n", c.IconURL)
}

func (o *Output) printCatalogStatus(s CatalogStatus) {
	loadedStr := "no"
	if s.Loaded {
		loadedStr = "yes"
	}
	fmt.Printf("Loaded: %s\n", loadedStr)
	if s.Version != "" {
		fmt.Printf("Version: %s\n", s.Version)
	}
	fmt.Printf("Champions: %d\n", s.Champions)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
