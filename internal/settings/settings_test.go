package settings

import "testing"

func TestDefaults_MatchPackageConstants(t *testing.T) {
	s := Defaults()
	if s.MinPrerollFrames() != DefaultMinPrerollFrames {
		t.Fatalf("got %d, want %d", s.MinPrerollFrames(), DefaultMinPrerollFrames)
	}
	if s.MaxPrerollFrames() != DefaultMaxPrerollFrames {
		t.Fatalf("got %d, want %d", s.MaxPrerollFrames(), DefaultMaxPrerollFrames)
	}
	if s.PercentAhead() != DefaultPercentAhead {
		t.Fatalf("got %v, want %v", s.PercentAhead(), DefaultPercentAhead)
	}
	if s.MaxFrames() != DefaultMaxFrames {
		t.Fatalf("got %d, want %d", s.MaxFrames(), DefaultMaxFrames)
	}
	if s.PlaybackCachingEnabled() != DefaultEnableCaching {
		t.Fatalf("got %v, want %v", s.PlaybackCachingEnabled(), DefaultEnableCaching)
	}
}

func TestStatic_FieldsAreLiveNotSnapshot(t *testing.T) {
	s := Defaults()
	s.MinPreroll = 99
	if s.MinPrerollFrames() != 99 {
		t.Fatalf("expected mutating the field to change the accessor's result, got %d", s.MinPrerollFrames())
	}
}
