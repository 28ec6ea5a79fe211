package shared

type Config struct {
	Environment    *bool           `yaml:"environment" validate:"required"`
	Port           *string         `yaml:"port" validate:"required"`
	Cors           []*string       `yaml:"cors" validate:"required"`
	RequestTimeout *int            `yaml:"request_timeout" validate:"omitempty,min=1"`
	Storage        *string         `yaml:"storage" validate:"required,oneof=drive minio"`
	Drive          *DriveConfig    `yaml:"drive" validate:"omitempty"`
	MinIO          *MinIOConfig    `yaml:"minio" validate:"omitempty"`
	Renderer       *RendererConfig `yaml:"renderer" validate:"omitempty"`
	Signing        *SigningConfig  `yaml:"signing" validate:"omitempty"`
	Mail           *MailConfig     `yaml:"mail" validate:"omitempty"`
}

// DriveConfig points the uploader at one Drive folder through a service account key file.
type DriveConfig struct {
	CredentialFile    string   `yaml:"credential_file" validate:"required"`
	FolderID          string   `yaml:"folder_id" validate:"required"`
	Scopes            []string `yaml:"scopes"`
	Endpoint          string   `yaml:"endpoint" validate:"omitempty,url"`
	SupportsAllDrives bool     `yaml:"supports_all_drives"`
}

type MinIOConfig struct {
	Endpoint      string `yaml:"endpoint" validate:"required"`
	AccessKey     string `yaml:"access_key" validate:"required"`
	SecretKey     string `yaml:"secret_key" validate:"required"`
	Bucket        string `yaml:"bucket" validate:"required"`
	Folder        string `yaml:"folder"`
	Region        string `yaml:"region"`
	Secure        bool   `yaml:"secure"`
	PublicURL     string `yaml:"public_url" validate:"omitempty,url"`
	PresignExpiry int    `yaml:"presign_expiry" validate:"omitempty,min=1,max=604800"`
}

type RendererConfig struct {
	Title     string `yaml:"title"`
	Issuer    string `yaml:"issuer"`
	VerifyURL string `yaml:"verify_url" validate:"omitempty,url"`
	FontFile  string `yaml:"font_file"`
}

type SigningConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertPath string `yaml:"cert_path" validate:"required_if=Enabled true"`
	KeyPath  string `yaml:"key_path" validate:"required_if=Enabled true"`
}

type MailConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required"`
	User string `yaml:"user" validate:"required"`
	Pass string `yaml:"pass" validate:"required"`
	From string `yaml:"from" validate:"required,email"`
}
