package photonwalk

var (
	Debug = false // set to true for debug level logging
	// Compile time checks for the collaborator interfaces
	_ AngleSource = (*RandomAngles)(nil)
	_ AngleSource = FixedAngles{}
	_ AngleSource = (*SequenceAngles)(nil)
	_ Recorder    = (*Trajectory)(nil)
	_ Recorder    = RecorderFunc(nil)
	_ Reporter    = ReporterFunc(nil)
)
