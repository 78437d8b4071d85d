package ajp

// Names of the well-known request attributes a proxy may append after the
// headers block. Custom attributes arrive under their literal names.
const (
	AttrContext      = "context"
	AttrServletPath  = "servlet_path"
	AttrRemoteUser   = "remote_user"
	AttrAuthType     = "auth_type"
	AttrQueryString  = "query_string"
	AttrRoute        = "route"
	AttrSSLCert      = "ssl_cert"
	AttrSSLCipher    = "ssl_cipher"
	AttrSSLSession   = "ssl_session"
	AttrReqAttribute = "req_attribute"
	AttrSSLKeySize   = "ssl_key_size"
	AttrSecret       = "secret"
	AttrStoredMethod = "stored_method"
)
