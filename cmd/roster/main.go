package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/classroom-roster/internal/cache"
	"github.com/classroom-roster/internal/config"
	"github.com/classroom-roster/internal/importer"
	"github.com/classroom-roster/internal/logging"
	"github.com/classroom-roster/internal/reconcile"
	"github.com/classroom-roster/internal/resolver"
	"github.com/classroom-roster/internal/roster"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Classroom roster matching toolkit",
		Long:  `Reconciles messy name strings from grading UIs, CSV exports and meeting logs against the yearly student roster`,
	}

	rootCmd.AddCommand(createImportCmd())
	rootCmd.AddCommand(createLookupCmd())
	rootCmd.AddCommand(createParentCmd())
	rootCmd.AddCommand(createAttendanceCmd())
	rootCmd.AddCommand(createStatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger every command starts from.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.Debug), nil
}

// openResolver loads the current snapshot and wires a resolver over
// it. The returned cache stays open so commands that mutate the store
// can save it back; callers must Close it.
func openResolver(cfg *config.Config, log zerolog.Logger) (*roster.Store, *resolver.Resolver, *cache.Cache, error) {
	c, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := c.Load(time.Now())
	if err != nil {
		c.Close()
		return nil, nil, nil, err
	}
	overrides, err := config.LoadOverrides(cfg.OverridesFile)
	if err != nil {
		c.Close()
		return nil, nil, nil, err
	}
	res := resolver.New(store, overrides, log)
	return store, res, c, nil
}

func createImportCmd() *cobra.Command {
	var studentsPath, guardiansPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Rebuild the roster cache from CSV exports",
		Long:  `Imports the student roster and guardian CSVs and persists a fresh snapshot. Validation is fail-fast: a bad header or boolean aborts without touching the existing snapshot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			studentRows, err := importer.ReadCSVFile(studentsPath)
			if err != nil {
				return err
			}
			guardianRows, err := importer.ReadCSVFile(guardiansPath)
			if err != nil {
				return err
			}
			store, err := importer.New(log).ImportSchoolYear(studentRows, guardianRows)
			if err != nil {
				log.Error().Err(err).Msg("import aborted")
				return err
			}
			c, err := cache.Open(cfg.CacheDir)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Save(store); err != nil {
				return err
			}
			fmt.Printf("Imported %d students across %d homerooms\n",
				len(store.Students()), len(store.Homerooms()))
			return nil
		},
	}

	cmd.Flags().StringVar(&studentsPath, "students", "", "student roster CSV (required)")
	cmd.Flags().StringVar(&guardiansPath, "guardians", "", "parent/guardian CSV (required)")
	cmd.MarkFlagRequired("students")
	cmd.MarkFlagRequired("guardians")
	return cmd
}

func createLookupCmd() *cobra.Command {
	var homeroom string
	var threshold int
	var soundsLike bool

	cmd := &cobra.Command{
		Use:   "lookup [name]",
		Short: "Look up a student by raw name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			store, res, c, err := openResolver(cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			if soundsLike {
				hits := res.SoundsLike(args[0])
				if len(hits) == 0 {
					fmt.Println("No phonetic candidates")
					return nil
				}
				for _, hit := range hits {
					fmt.Printf("%-30s %-20s %.2f\n", hit.Student.FullName(), hit.Student.Homeroom, hit.Similarity)
				}
				return nil
			}

			opts := resolver.Options{Threshold: threshold, ScanRoster: cfg.ScanRoster}
			if homeroom != "" {
				hr := store.Homeroom(homeroom)
				if hr == nil {
					return fmt.Errorf("unknown homeroom %q", homeroom)
				}
				opts.Subgroup = hr.Students
			}
			s := res.Resolve(args[0], opts)
			if s == nil {
				fmt.Println("No match")
				return nil
			}
			printStudent(s)
			return nil
		},
	}

	cmd.Flags().StringVar(&homeroom, "homeroom", "", "restrict disambiguation to one homeroom")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "fuzzy confidence floor, 1-100 (default from config)")
	cmd.Flags().BoolVar(&soundsLike, "sounds-like", false, "phonetic search instead of fuzzy resolution")
	return cmd
}

func createParentCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "parent [name]",
		Short: "Look up a parent/guardian by raw name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			_, res, c, err := openResolver(cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			g := res.ResolveGuardian(args[0], threshold)
			if g == nil {
				fmt.Println("No match")
				return nil
			}
			fmt.Printf("%s (%s of %s)\n", g.FullName(), g.Relationship, g.Student.FullName())
			if g.Phone != 0 {
				fmt.Printf("  phone: %d\n", g.Phone)
			}
			if g.Email != "" {
				fmt.Printf("  email: %s\n", g.Email)
			}
			fmt.Printf("  allow contact: %v  primary: %v  resides with student: %v\n",
				g.AllowContact, g.PrimaryContact, g.ResidesWith)
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", 0, "fuzzy confidence floor, 1-100 (default from config)")
	return cmd
}

func createAttendanceCmd() *cobra.Command {
	var homeroom string

	cmd := &cobra.Command{
		Use:   "attendance [file]",
		Short: "Reconcile a meeting attendance export against the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			store, res, c, err := openResolver(cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			rows, err := reconcile.ReadAttendanceCSV(args[0])
			if err != nil {
				return err
			}
			opts := resolver.Options{Threshold: cfg.Threshold, ScanRoster: cfg.ScanRoster}
			if homeroom != "" {
				hr := store.Homeroom(homeroom)
				if hr == nil {
					return fmt.Errorf("unknown homeroom %q", homeroom)
				}
				opts.Subgroup = hr.Students
			}

			result := reconcile.New(res, log).Attendance(rows, opts)
			fmt.Printf("Matched %d of %d rows\n", result.Matched, len(rows))
			if len(result.Unmatched) > 0 {
				fmt.Println("Needs manual review:")
				for _, name := range result.Unmatched {
					fmt.Printf("  %s\n", name)
				}
			}

			// Attendance mutates the store, so persist the snapshot.
			return c.Save(store)
		},
	}

	cmd.Flags().StringVar(&homeroom, "homeroom", "", "scope resolution to one homeroom")
	return cmd
}

func createStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			store, _, c, err := openResolver(cfg, log)
			if err != nil {
				return err
			}
			defer c.Close()

			guardians := 0
			for _, s := range store.Students() {
				guardians += len(s.Guardians)
			}
			fmt.Printf("Snapshot created: %s\n", store.CreatedAt.Format("2006-01-02"))
			fmt.Printf("Students:  %d\n", len(store.Students()))
			fmt.Printf("Homerooms: %d\n", len(store.Homerooms()))
			fmt.Printf("Groups:    %d\n", len(store.Groups()))
			fmt.Printf("Guardians: %d\n", guardians)
			return nil
		},
	}
}

func printStudent(s *roster.Student) {
	fmt.Printf("%s\n", s.FullName())
	if s.StudentID != "" {
		fmt.Printf("  student id: %s\n", s.StudentID)
	}
	fmt.Printf("  homeroom:   %s\n", s.Homeroom)
	if s.GradeLevel != 0 {
		fmt.Printf("  grade:      %d\n", s.GradeLevel)
	} else if s.GradeText != "" {
		fmt.Printf("  grade:      %s\n", s.GradeText)
	}
	if s.Email != "" {
		fmt.Printf("  email:      %s\n", s.Email)
	}
	if s.Primary != nil {
		fmt.Printf("  primary contact: %s (%s)\n", s.Primary.FullName(), s.Primary.Relationship)
	}
}
