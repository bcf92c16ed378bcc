package cleanup

import "context"

// Fixture gives a suite clean collections: once around the whole suite and again
// around every test.
//
//	var fx = cleanup.NewFixture(cleanup.NewCleaner(cfg.Mongo))
//	BeforeSuite(func(ctx SpecContext) { Expect(fx.SetupSuite(ctx)).To(Succeed()) })
//	AfterSuite(func(ctx SpecContext) { Expect(fx.TeardownSuite(ctx)).To(Succeed()) })
//	BeforeEach(func(ctx SpecContext) { Expect(fx.SetupSpec(ctx)).To(Succeed()) })
//	AfterEach(func(ctx SpecContext) { Expect(fx.TeardownSpec(ctx)).To(Succeed()) })
type Fixture struct {
	cleaner *Cleaner
}

func NewFixture(c *Cleaner) *Fixture {
	return &Fixture{cleaner: c}
}

func (f *Fixture) Cleaner() *Cleaner {
	return f.cleaner
}

func (f *Fixture) SetupSuite(ctx context.Context) error {
	if err := f.cleaner.Connect(ctx); err != nil {
		return err
	}
	return f.cleaner.CleanAll(ctx)
}

func (f *Fixture) TeardownSuite(ctx context.Context) error {
	if err := f.cleaner.CleanAll(ctx); err != nil {
		return err
	}
	return f.cleaner.Disconnect(ctx)
}

func (f *Fixture) SetupSpec(ctx context.Context) error {
	return f.cleaner.CleanAll(ctx)
}

func (f *Fixture) TeardownSpec(ctx context.Context) error {
	return f.cleaner.CleanAll(ctx)
}
