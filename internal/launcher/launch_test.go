package launcher

import (
	"encoding/json"
	"strings"
	"testing"
)

func rawMsg(t *testing.T, s string) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return data
}

func TestBuildLaunchArgsSubstitutesTemplates(t *testing.T) {
	version := &Version{
		MainClass: "net.minecraft.client.main.Main",
		Arguments: Arguments{
			JVM:  []json.RawMessage{rawMsg(t, "-Djava.library.path=${natives_directory}"), rawMsg(t, "-cp"), rawMsg(t, "${classpath}")},
			Game: []json.RawMessage{rawMsg(t, "--username"), rawMsg(t, "${auth_player_name}"), rawMsg(t, "--gameDir"), rawMsg(t, "${game_directory}")},
		},
	}
	rc := RuntimeConfig{
		NativesDirectory: "/game/versions/1.21/natives",
		Classpath:        []string{"/game/libraries/a.jar", "/game/libraries/b.jar"},
		AuthPlayerName:   "Steve",
		GameDirectory:    "/game",
		MemoryLimitMiB:   2048,
	}

	args := BuildLaunchArgs(version, rc)
	joined := strings.Join(args, " ")

	if !strings.Contains(joined, "-Djava.library.path=/game/versions/1.21/natives") {
		t.Errorf("natives_directory not substituted: %v", args)
	}
	if !strings.Contains(joined, "/game/libraries/a.jar:/game/libraries/b.jar") {
		t.Errorf("classpath not joined with os separator: %v", args)
	}
	if !strings.Contains(joined, "net.minecraft.client.main.Main") {
		t.Errorf("main class missing: %v", args)
	}
	if !strings.Contains(joined, "Steve") {
		t.Errorf("auth_player_name not substituted: %v", args)
	}
	if !strings.Contains(joined, "-Xmx2048M") {
		t.Errorf("fixed memory flag missing: %v", args)
	}

	mainIdx := indexOf(args, "net.minecraft.client.main.Main")
	usernameIdx := indexOf(args, "Steve")
	if mainIdx == -1 || usernameIdx == -1 || usernameIdx < mainIdx {
		t.Errorf("game args must come after main class: %v", args)
	}
}

func indexOf(items []string, target string) int {
	for i, s := range items {
		if s == target {
			return i
		}
	}
	return -1
}

func TestSubstituteLeavesUnknownTokensAlone(t *testing.T) {
	got := substitute("${known} and ${unknown}", map[string]string{"known": "value"})
	want := "value and ${unknown}"
	if got != want {
		t.Errorf("substitute() = %q; want %q", got, want)
	}
}
