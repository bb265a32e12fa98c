package constant

// NowPlayingTemplate is the default text/template used to print progress snapshots.
// It is executed with a progress.Snapshot.
const NowPlayingTemplate = `{{ status .PlaybackStatus }} {{ .Metadata.Title }}{{ with .Metadata.Artists }} - {{ join . ", " }}{{ end }} [{{ duration .CurrentPosition }}{{ if .Length }}/{{ duration .Length }}{{ end }}]`
