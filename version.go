package mapscript

// Version is the mapscript release version
const Version = "0.1.0"
