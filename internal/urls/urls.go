package urls

// Repository is the project home page.
const Repository = "https://github.com/muurk/wsdemo"

// EchoServer describes how to run a local echo endpoint on port 1323 for the
// client to talk to.
const EchoServer = "https://github.com/muurk/wsdemo#running-an-echo-server"

// Troubleshooting covers refused connections, rejected handshakes and
// endpoints that are not found by scan.
const Troubleshooting = "https://github.com/muurk/wsdemo#troubleshooting"

// Configuration documents the config file fields and their precedence.
const Configuration = "https://github.com/muurk/wsdemo#configuration"
