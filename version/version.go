package version

// Version is the current rolodex release
var Version = "0.1.0"
