package launcher

import (
	"path/filepath"
	"testing"
)

func TestComposeTasksEmptyInstall(t *testing.T) {
	CurrentOS = "linux"
	defer func() { CurrentOS = detectOS("linux") }()

	digest := "abc123"
	version := &Version{
		ID:        "1.21",
		Libraries: nil,
		Downloads: map[string]Artifact{
			"client": {URL: "https://launcher.mojang.com/client.jar", Digest: &digest},
		},
	}
	assets := &AssetCatalog{Objects: map[string]Asset{}}
	mirrors := OfficialMirrors()
	gameDir := t.TempDir()

	tasks := ComposeTasks(version, assets, mirrors, gameDir, "1.21")
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d; want 1 (client only)", len(tasks))
	}
	want := filepath.Join(gameDir, "versions", "1.21", "1.21.jar")
	if tasks[0].Destination != want {
		t.Errorf("client destination = %q; want %q", tasks[0].Destination, want)
	}
}

func TestComposeTasksAssetDuplicateHashesShareDestination(t *testing.T) {
	version := &Version{Downloads: map[string]Artifact{"client": {URL: "https://x/"}}}
	assets := &AssetCatalog{Objects: map[string]Asset{
		"a.png": {Hash: "deadbeef", Size: 1},
		"b.png": {Hash: "deadbeef", Size: 1},
	}}
	gameDir := t.TempDir()
	mirrors := OfficialMirrors()

	tasks := ComposeTasks(version, assets, mirrors, gameDir, "1.21")
	var assetTasks int
	dest := filepath.Join(gameDir, "assets", "objects", "de", "deadbeef")
	for _, tk := range tasks {
		if tk.Destination == dest {
			assetTasks++
		}
	}
	if assetTasks != 2 {
		t.Fatalf("expected 2 tasks sharing destination %q, got %d", dest, assetTasks)
	}
}

func TestComposeTasksLibrarySkipsNonTargetOS(t *testing.T) {
	CurrentOS = "linux"
	defer func() { CurrentOS = detectOS("linux") }()

	version := &Version{
		Libraries: []Library{
			{Name: "included", Rules: []Rule{{Action: "allow", OS: map[string]string{"name": "linux"}}}},
			{Name: "excluded", Rules: []Rule{{Action: "allow", OS: map[string]string{"name": "windows"}}}},
		},
		Downloads: map[string]Artifact{"client": {URL: "https://x/"}},
	}
	tasks := ComposeTasks(version, &AssetCatalog{}, OfficialMirrors(), t.TempDir(), "1.21")
	// one library task (included) + one client task
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d; want 2", len(tasks))
	}
}

func TestLibraryTasksBuildsExactURL(t *testing.T) {
	CurrentOS = "linux"
	defer func() { CurrentOS = detectOS("linux") }()

	digest := "deadbeef"
	version := &Version{
		Libraries: []Library{
			{
				Name: "org.example:regular:1.0",
				Downloads: LibDownloads{
					Primary: Artifact{Path: "org/example/regular/1.0/regular-1.0.jar", Digest: &digest, URL: "https://libraries.minecraft.net/org/example/regular/1.0/regular-1.0.jar"},
				},
			},
			{
				Name: "net.fabricmc:fabric-loader:0.15.0",
				Downloads: LibDownloads{
					Primary: Artifact{Path: "net/fabricmc/fabric-loader/0.15.0/fabric-loader-0.15.0.jar", Digest: &digest, URL: fabricMavenOrigin},
				},
			},
		},
	}
	mirrors := OfficialMirrors()

	tasks := libraryTasks(version, mirrors, "/game")
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d; want 2", len(tasks))
	}

	wantRegular := "https://libraries.minecraft.net/org/example/regular/1.0/regular-1.0.jar"
	if tasks[0].URL != wantRegular {
		t.Errorf("regular library URL = %q; want %q (no double slash)", tasks[0].URL, wantRegular)
	}

	wantFabric := "https://maven.fabricmc.net/net/fabricmc/fabric-loader/0.15.0/fabric-loader-0.15.0.jar"
	if tasks[1].URL != wantFabric {
		t.Errorf("fabric maven library URL = %q; want %q", tasks[1].URL, wantFabric)
	}
}

func TestClientTaskRewritesOrigin(t *testing.T) {
	digest := "abc"
	version := &Version{Downloads: map[string]Artifact{"client": {URL: "https://launcher.mojang.com/v1/client.jar", Digest: &digest}}}
	mirrors := MirrorSet{Client: "https://bmclapi2.bangbang93.com/"}
	task := clientTask(version, mirrors, "/game", "1.21")
	want := "https://bmclapi2.bangbang93.com/v1/client.jar"
	if task.URL != want {
		t.Errorf("client URL = %q; want %q", task.URL, want)
	}
}
