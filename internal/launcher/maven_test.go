package launcher

import "testing"

func TestMavenToPath(t *testing.T) {
	tests := []struct {
		name       string
		coordinate string
		want       string
	}{
		{
			name:       "fabric sponge-mixin example",
			coordinate: "net.fabricmc:sponge-mixin:0.13.3+mixin.0.8.5",
			want:       "net/fabricmc/sponge-mixin/0.13.3+mixin.0.8.5/sponge-mixin-0.13.3+mixin.0.8.5.jar",
		},
		{
			name:       "single-segment group",
			coordinate: "asm:asm:9.6",
			want:       "asm/asm/9.6/asm-9.6.jar",
		},
		{
			name:       "malformed coordinate is returned unchanged",
			coordinate: "not-a-coordinate",
			want:       "not-a-coordinate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MavenToPath(tt.coordinate); got != tt.want {
				t.Errorf("MavenToPath(%q) = %q; want %q", tt.coordinate, got, tt.want)
			}
		})
	}
}
