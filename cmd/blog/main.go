package main

import (
	"fmt"
	"os"
	"strconv"

	"blog-go/internal/app"
	"blog-go/internal/blog"
	"blog-go/internal/config"
	"blog-go/internal/view"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readConfig loads the config file named by the defaults.
func readConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates a BlogApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "list", "new").
func newApp(operation, args string) (*app.BlogApp, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewBlogApp(cfg, app.Options{
		Operation:  operation,
		Args:       args,
		Passphrase: promptPassphrase,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// sortFromFlags builds the sort state from --sort and --order. Without
// --order the key's default order applies.
func sortFromFlags(cmd *cobra.Command) (blog.SortState, error) {
	keyFlag, _ := cmd.Flags().GetString("sort")
	orderFlag, _ := cmd.Flags().GetString("order")

	key, err := blog.ParseSortKey(keyFlag)
	if err != nil {
		return blog.SortState{}, err
	}

	order := blog.DefaultOrder(key)
	if orderFlag != "" {
		if order, err = blog.ParseSortOrder(orderFlag); err != nil {
			return blog.SortState{}, err
		}
	}
	return blog.SortState{Key: key, Order: order}, nil
}

func parsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

var rootCmd = &cobra.Command{
	Use:          "blog",
	Short:        "Personal blog",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		instanceID := uuid.New().String()
		cfg := config.NewConfig(instanceID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Instance ID: %s\n", instanceID)
		fmt.Printf("Base Dir:    %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Instance ID: %s\n", cfg.InstanceID)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Locale:      %s\n", cfg.Locale)
		fmt.Printf("Store:       %s\n", cfg.Store.Type)
		fmt.Printf("Encryption:  %s\n", cfg.Encryption.Type)
		return nil
	},
}

// key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage encryption keys",
}

var keyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return err
		}

		passphrase, err := promptNewPassphrase()
		if err != nil {
			return err
		}

		recipient, err := app.InitKeys(cfg.Encryption, passphrase)
		if err != nil {
			return err
		}

		fmt.Printf("Public key:  %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Printf("Private key: %s\n", cfg.Encryption.PrivateKeyPath)
		fmt.Printf("Recipient:   %s\n", recipient)
		return nil
	},
}

// store command
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect the post store",
}

var storeCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured store is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("store check", "")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.CheckStore(); err != nil {
			return err
		}

		fmt.Printf("Store OK (%d posts)\n", a.PostCount())
		return nil
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sort, err := sortFromFlags(cmd)
		if err != nil {
			return err
		}

		a, err := newApp("list", fmt.Sprintf("search=%q sort=%s", search, sort.Key))
		if err != nil {
			return err
		}
		defer a.Close()

		return a.RenderList(os.Stdout, search, sort)
	},
}

// new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		var d blog.Draft
		d.Title, _ = cmd.Flags().GetString("title")
		d.Excerpt, _ = cmd.Flags().GetString("excerpt")
		d.Content, _ = cmd.Flags().GetString("content")
		d.Date, _ = cmd.Flags().GetString("date")
		d.ReadTime, _ = cmd.Flags().GetString("read-time")
		d.Category, _ = cmd.Flags().GetString("category")

		a, err := newApp("new", fmt.Sprintf("title=%q", d.Title))
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.CreatePost(d)
		if err != nil {
			return err
		}

		fmt.Printf("Created post %d: %s (%s)\n", p.ID, p.Title, view.DetailPath(p.ID))
		return nil
	},
}

// delete command
var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp("delete", "id="+args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		var confirmErr error
		removed, err := a.DeletePost(id, func(p blog.Post) bool {
			if yes {
				return true
			}
			ok, err := confirmDelete(p)
			confirmErr = err
			return ok
		})
		if err != nil {
			return err
		}
		if confirmErr != nil {
			return confirmErr
		}

		if removed {
			fmt.Printf("Deleted post %d\n", id)
		} else {
			fmt.Println("Nothing deleted.")
		}
		return nil
	},
}

// show command
var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("show", "id="+args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		return a.ShowPost(os.Stdout, id)
	},
}

// open command
var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Render the page at a path (/, /blog, /blog/ID)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("open", "path="+args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Open(os.Stdout, args[0])
	},
}

// browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse posts interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("browse", "")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Browse(os.Stdin, os.Stdout)
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// key subcommands
	keyCmd.AddCommand(keyInitCmd)

	// store subcommands
	storeCmd.AddCommand(storeCheckCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(storeCmd)

	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("search", "s", "", "Only show posts whose title, category or excerpt contains this text")
	listCmd.Flags().String("sort", "date", "Sort by date, title, category or readTime")
	listCmd.Flags().String("order", "", "asc or desc (default: desc for date, asc otherwise)")

	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringP("title", "t", "", "Post title (required)")
	newCmd.Flags().StringP("excerpt", "e", "", "Short excerpt (required)")
	newCmd.Flags().String("content", "", "Full content")
	newCmd.Flags().String("date", "", "Publication date, YYYY-MM-DD (default: today)")
	newCmd.Flags().String("read-time", "", "Read time, e.g. \"5 min read\"")
	newCmd.Flags().StringP("category", "c", "", "Category")

	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(browseCmd)
}
