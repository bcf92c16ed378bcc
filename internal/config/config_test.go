package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"

	"github.com/eventsqa/harness/internal/config"
)

var _ = Describe("Configuration", func() {
	Context("defaults", func() {
		It("should fill every section", func() {
			cfg := config.NewConfigurationWithDefaults()

			Expect(cfg.Server.ServerMode).To(Equal("dev"))
			Expect(cfg.Server.HTTPPort).To(Equal(8000))
			Expect(cfg.Runner.Command).To(Equal([]string{"go", "test", "-tags=e2e", "-count=1", "-v"}))
			Expect(cfg.Runner.Package).To(Equal("./test/api"))
			Expect(cfg.Runner.Workers).To(Equal(1))
			Expect(cfg.Runner.Timeout).To(Equal(10 * time.Minute))
			Expect(cfg.Browser.Headless).To(BeFalse())
			Expect(cfg.Browser.SlowMo).To(Equal(0))
			Expect(cfg.Browser.BaseURL).To(Equal("http://localhost:4200"))
			Expect(cfg.API.BaseURL).To(Equal("http://localhost:5500"))
			Expect(cfg.Mongo.Database).To(Equal("events_test"))
			Expect(cfg.Mongo.Collections).To(HaveLen(8))
			Expect(cfg.Tools.Port).To(Equal(8003))
			Expect(cfg.Tools.AltPort).To(Equal(0))
		})

		It("should be valid", func() {
			Expect(config.NewConfigurationWithDefaults().Validate()).To(Succeed())
		})
	})

	Context("Load", func() {
		// Given the legacy environment variables used by existing .env files
		// When the configuration is loaded
		// Then they override the defaults
		It("should honour legacy environment names", func() {
			GinkgoT().Setenv("BASE_URL", "http://frontend:4200")
			GinkgoT().Setenv("HEADLESS", "true")
			GinkgoT().Setenv("SLOW_MO", "250")
			GinkgoT().Setenv("API_BASE_URL", "http://api:5500")
			GinkgoT().Setenv("N8N_REST_PORT", "9000")

			cfg, err := config.Load(viper.New())

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Browser.BaseURL).To(Equal("http://frontend:4200"))
			Expect(cfg.Browser.Headless).To(BeTrue())
			Expect(cfg.Browser.SlowMo).To(Equal(250))
			Expect(cfg.API.BaseURL).To(Equal("http://api:5500"))
			Expect(cfg.Server.HTTPPort).To(Equal(9000))
			Expect(cfg.RequireBaseURL()).To(Succeed())
		})

		// Given PARTY2_PORT from an existing .env
		// When the configuration is loaded
		// Then the tool server gets a second listener on that port
		It("should bind PARTY2_PORT to the alternate tools port", func() {
			GinkgoT().Setenv("PARTY2_PORT", "9001")

			cfg, err := config.Load(viper.New())

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Tools.AltPort).To(Equal(9001))
			Expect(cfg.DebugMap()).To(HaveKeyWithValue("tools.alt-port", 9001))
		})

		It("should reject an alternate tools port equal to the tools port", func() {
			GinkgoT().Setenv("PARTY2_PORT", "8003")

			_, err := config.Load(viper.New())

			Expect(err).To(MatchError(ContainSubstring("equals tools port")))
		})

		It("should honour prefixed environment names", func() {
			GinkgoT().Setenv("HARNESS_RUNNER_WORKERS", "3")
			GinkgoT().Setenv("HARNESS_RUNNER_TIMEOUT", "45s")

			cfg, err := config.Load(viper.New())

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Runner.Workers).To(Equal(3))
			Expect(cfg.Runner.Timeout).To(Equal(45 * time.Second))
		})

		It("should keep defaults for unset keys", func() {
			cfg, err := config.Load(viper.New())

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Mongo.URI).To(Equal("mongodb://localhost:27017"))
			Expect(cfg.Runner.Command).To(HaveLen(5))
		})

		It("should reject an invalid server mode", func() {
			GinkgoT().Setenv("HARNESS_SERVER_MODE", "staging")

			_, err := config.Load(viper.New())

			Expect(err).To(MatchError(ContainSubstring("invalid server mode")))
		})

		It("should reject a negative slow-mo", func() {
			GinkgoT().Setenv("SLOW_MO", "-5")

			_, err := config.Load(viper.New())

			Expect(err).To(HaveOccurred())
		})
	})

	Context("RequireBaseURL", func() {
		// Given BASE_URL was never provided
		// When a UI suite asks for it
		// Then an error naming the variable is returned even though a default exists
		It("should fail when BASE_URL was not set explicitly", func() {
			cfg, err := config.Load(viper.New())
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Browser.BaseURL).NotTo(BeEmpty())
			Expect(cfg.RequireBaseURL()).To(MatchError("BASE_URL environment variable is required"))
		})
	})

	Context("EnvFileFor", func() {
		It("should prefer an explicit file", func() {
			Expect(config.EnvFileFor("/tmp/custom.env", GinkgoT().TempDir())).To(Equal("/tmp/custom.env"))
		})

		// Given a suite running inside a nested package directory
		// When no env file is named
		// Then the .env at the module root is used
		It("should fall back to the module root", func() {
			root := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/x\n"), 0o600)).To(Succeed())
			nested := filepath.Join(root, "test", "ui")
			Expect(os.MkdirAll(nested, 0o755)).To(Succeed())

			Expect(config.EnvFileFor("", nested)).To(Equal(filepath.Join(root, ".env")))
		})
	})

	Context("LoadEnvFile", func() {
		It("should ignore a missing file", func() {
			loaded, err := config.LoadEnvFile(filepath.Join(GinkgoT().TempDir(), "missing.env"))

			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeFalse())
		})

		It("should load variables from the file", func() {
			path := filepath.Join(GinkgoT().TempDir(), ".env")
			Expect(os.WriteFile(path, []byte("MONGO_DATABASE=from_dotenv\n"), 0o600)).To(Succeed())
			DeferCleanup(os.Unsetenv, "MONGO_DATABASE")

			loaded, err := config.LoadEnvFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeTrue())

			cfg, err := config.Load(viper.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Mongo.Database).To(Equal("from_dotenv"))
		})
	})

	It("should expose a flat debug map", func() {
		m := config.NewConfigurationWithDefaults().DebugMap()

		Expect(m).To(HaveKeyWithValue("runner.command", "go test -tags=e2e -count=1 -v"))
		Expect(m).To(HaveKeyWithValue("browser.slow-mo", 0))
		Expect(m).NotTo(HaveKey("mongo.uri"))
	})
})
