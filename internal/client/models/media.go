package models

// Image is a generated or imported illustration. URL holds the storage
// reference: an object key on the backend, rewritten to the cached file's
// local path when the payload is on disk.
type Image struct {
	Doc
	Prompt string `json:"prompt,omitempty"`
	URL    string `json:"url,omitempty"`
}

func (i *Image) AssetRef() string { return i.URL }

func (i *Image) SetAssetRef(ref string) { i.URL = ref }

// AudioTrack is a generated narration or ambience recording.
type AudioTrack struct {
	Doc
	Title           string `json:"title"`
	URL             string `json:"url,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
}

func (a *AudioTrack) AssetRef() string { return a.URL }

func (a *AudioTrack) SetAssetRef(ref string) { a.URL = ref }

// Playlist orders audio tracks for a listening session.
type Playlist struct {
	Doc
	Name     string   `json:"name"`
	TrackIDs []string `json:"trackIds,omitempty"`
}

var (
	_ Entity      = (*Image)(nil)
	_ Entity      = (*AudioTrack)(nil)
	_ Entity      = (*Playlist)(nil)
	_ HasAssetRef = (*Image)(nil)
	_ HasAssetRef = (*AudioTrack)(nil)
)
