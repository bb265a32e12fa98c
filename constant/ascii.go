package constant

// AsciiArtLogo is the application's ASCII art banner.
const AsciiArtLogo = `                       _
 _ __ ___  _ __  _ __ (_)___ _   _ _ __   ___
| '_ ` + "`" + ` _ \| '_ \| '__|| / __| | | | '_ \ / __|
| | | | | | |_) | |   | \__ \ |_| | | | | (__
|_| |_| |_| .__/|_|   |_|___/\__, |_| |_|\___|
          |_|                |___/
`
