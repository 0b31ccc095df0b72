package entity

// Artifact is a single rendered figure file on disk.
type Artifact struct {
	Figure string `json:"figure"`
	Format string `json:"format"`
	Path   string `json:"path"`
}
