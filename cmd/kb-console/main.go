// ABOUTME: Terminal front end for the knowledge-base admin backend
// ABOUTME: Guard-mediated screen navigation, login flow and SSE chat streaming

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ragops/kbconsole/internal/appstate"
	"github.com/ragops/kbconsole/internal/config"
	"github.com/ragops/kbconsole/internal/credstore"
	"github.com/ragops/kbconsole/internal/format"
	"github.com/ragops/kbconsole/internal/gateway"
	"github.com/ragops/kbconsole/internal/nav"
	"github.com/ragops/kbconsole/internal/session"
)

const banner = `
 _    _                                  _
| | _| |__         ___ ___  _ __  ___  ___ | | ___
| |/ / '_ \ _____ / __/ _ \| '_ \/ __|/ _ \| |/ _ \
|   <| |_) |_____| (_| (_) | | | \__ \ (_) | |  __/
|_|\_\_.__/       \___\___/|_| |_|___/\___/|_|\___|
`

func main() {
	configPath := flag.String("config", "", "Config file path (default: auto-discover)")
	server := flag.String("server", "", "Backend base URL (overrides config)")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Gateway.BaseURL = *server
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)
	color.NoColor = !cfg.UI.Color

	store, err := credstore.Open(cfg.State.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Seed the persisted theme from config on first run
	if store.Get(credstore.KeyTheme) == "" && cfg.UI.Theme != "" {
		store.Set(credstore.KeyTheme, cfg.UI.Theme)
	}

	client := gateway.New(cfg.Gateway.BaseURL,
		gateway.WithTimeout(cfg.Gateway.Timeout),
		gateway.WithLogger(logger))
	sess := session.New(client, store, logger)
	state := appstate.New(store, sess, logger)

	table := nav.DefaultTable()
	guard := nav.NewGuard(sess, table, store, state, state.SetTitle, logger)
	registrar := nav.NewRegistrar(table, sess, logger)

	a := &app{
		cfg:       cfg,
		client:    client,
		store:     store,
		session:   sess,
		state:     state,
		table:     table,
		guard:     guard,
		registrar: registrar,
		logger:    logger,
		stdin:     bufio.NewScanner(os.Stdin),
	}

	sess.SetForcedLogoutHandler(func() {
		color.Red("\nSession expired. Please log in again.")
		a.chatSession = nil
		a.currentPath = nav.LoginPath
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := a.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

// newLogger builds the slog logger from the logging config.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// app wires the console together and carries the REPL state.
type app struct {
	cfg       *config.Config
	client    *gateway.Client
	store     *credstore.Store
	session   *session.Manager
	state     *appstate.State
	table     *nav.Table
	guard     *nav.Guard
	registrar *nav.Registrar
	logger    *slog.Logger

	stdin       *bufio.Scanner
	currentPath string
	chatSession *gateway.ChatSession
}

func (a *app) run(ctx context.Context) error {
	color.New(color.FgCyan).Print(banner)
	fmt.Printf("kb-console %s connected to %s\n", appstate.Version, a.cfg.Gateway.BaseURL)
	fmt.Println("Type /help for commands. Ctrl+C to quit.")
	fmt.Println()

	if err := a.state.Initialize(ctx); err != nil {
		color.Yellow("%v", err)
	}
	if a.session.IsAuthenticated() {
		a.registrar.Register()
		a.navigate(ctx, "/")
	} else {
		a.currentPath = nav.LoginPath
		if remembered := a.store.Get(credstore.KeyRememberedUsername); remembered != "" {
			fmt.Printf("Welcome back. Log in with /login %s\n", remembered)
		} else {
			fmt.Println("Not logged in. Use /login <username> to authenticate.")
		}
		fmt.Println()
	}

	for {
		a.printPrompt()

		input, err := a.readLine(ctx)
		if err != nil {
			if err == io.EOF || ctx.Err() != nil {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/quit" || input == "/exit" || input == "/q" {
			return nil
		}

		a.dispatch(ctx, input)
		fmt.Println()
	}
}

func (a *app) printPrompt() {
	if user := a.session.User(); user != nil {
		fmt.Printf("[%s %s]> ", user.Username, a.currentPath)
	} else {
		fmt.Printf("[%s]> ", a.currentPath)
	}
}

// readLine reads one line of input without blocking shutdown.
func (a *app) readLine(ctx context.Context) (string, error) {
	inputCh := make(chan string, 1)
	errCh := make(chan error, 1)

	go func() {
		if a.stdin.Scan() {
			inputCh <- a.stdin.Text()
			return
		}
		if err := a.stdin.Err(); err != nil {
			errCh <- err
		} else {
			errCh <- io.EOF
		}
	}()

	select {
	case <-ctx.Done():
		return "", io.EOF
	case err := <-errCh:
		return "", err
	case input := <-inputCh:
		return input, nil
	}
}

func (a *app) dispatch(ctx context.Context, input string) {
	cmd, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "/help":
		a.printHelp()
	case "/login":
		a.cmdLogin(ctx, args)
	case "/logout":
		a.cmdLogout()
	case "/whoami":
		a.cmdWhoami()
	case "/permissions":
		a.cmdPermissions()
	case "/user-add":
		a.cmdUserAdd(ctx)
	case "/passwd":
		a.cmdPasswd(ctx, args)
	case "/routes":
		a.cmdRoutes()
	case "/open":
		if args == "" {
			color.Yellow("Usage: /open <path>")
			return
		}
		a.navigate(ctx, args)
	case "/theme":
		if a.state.ToggleDarkMode() {
			fmt.Println("Theme: dark")
		} else {
			fmt.Println("Theme: light")
		}
	case "/sidebar":
		if a.state.ToggleSidebar() {
			fmt.Println("Sidebar: collapsed")
		} else {
			fmt.Println("Sidebar: expanded")
		}
	default:
		if strings.HasPrefix(cmd, "/") {
			color.Yellow("Unknown command: %s (try /help)", cmd)
			return
		}
		a.chatTurn(ctx, input)
	}
}

func (a *app) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /login [username]   Authenticate against the backend")
	fmt.Println("  /logout             Clear the session")
	fmt.Println("  /whoami             Show identity, roles and token expiry")
	fmt.Println("  /permissions        List the session's permissions")
	fmt.Println("  /user-add           Create a user account")
	fmt.Println("  /passwd <user-id>   Reset a user's password")
	fmt.Println("  /open <path>        Navigate to a screen (e.g. /admin/knowledge)")
	fmt.Println("  /routes             List navigable routes")
	fmt.Println("  /theme              Toggle light/dark theme")
	fmt.Println("  /sidebar            Toggle the sidebar preference")
	fmt.Println("  /help               Show this help")
	fmt.Println("  /quit               Exit")
	fmt.Println()
	fmt.Println("On the chat screen, any non-command input is sent as a chat message.")
}

// navigate runs the guard for path and renders the resulting screen,
// following redirects.
func (a *app) navigate(ctx context.Context, path string) {
	for i := 0; i < 8; i++ {
		decision := a.guard.Decide(ctx, path)
		a.logger.Debug("navigation", "path", path, "decision", decision.String())

		switch decision.Action {
		case nav.ActionProceed:
			a.currentPath = path
			a.guard.AfterNavigate(path)
			a.renderScreen(ctx, path)
			return
		case nav.ActionRedirect:
			path = decision.Target
		case nav.ActionDeny:
			a.showDialog()
			return
		}
	}
	color.Red("Navigation did not settle; staying on %s", a.currentPath)
}

// showDialog prints and dismisses the blocking dialog raised by a denied
// transition.
func (a *app) showDialog() {
	open, title, message := a.state.Dialog()
	if !open {
		return
	}
	fmt.Println()
	color.New(color.FgRed, color.Bold).Printf("  %s\n", title)
	fmt.Printf("  %s\n", message)
	a.state.CloseDialog()
}

func (a *app) printScreenHeader() {
	if title := a.state.Title(); title != "" {
		color.New(color.FgCyan, color.Bold).Printf("\n  %s\n", title)
		color.Cyan("  %s\n", strings.Repeat("-", len(title)))
	}
}

func (a *app) renderScreen(ctx context.Context, path string) {
	a.printScreenHeader()

	switch path {
	case nav.LoginPath:
		if remembered := a.store.Get(credstore.KeyRememberedUsername); remembered != "" {
			fmt.Printf("  Use /login %s to authenticate.\n", remembered)
		} else {
			fmt.Println("  Use /login <username> to authenticate.")
		}
	case "/":
		a.renderHome(ctx)
	case "/admin/knowledge", "/knowledge":
		a.renderKnowledge(ctx)
	case "/admin/documents", "/document":
		a.renderDocuments(ctx)
	case "/admin/chat", "/chat":
		a.renderChat(ctx)
	case "/admin/models", "/model":
		a.renderModels(ctx)
	case "/admin/rbac/users":
		a.renderUsers(ctx)
	case "/admin/rbac/roles":
		a.renderRoles(ctx)
	case "/admin/rbac/permissions":
		a.renderPermissions(ctx)
	case "/admin/settings", "/settings":
		a.renderSettings()
	case "/unauthorized":
		color.Red("  Access to the requested resource is restricted.")
	}
}

func (a *app) renderHome(ctx context.Context) {
	user := a.session.User()
	if user == nil {
		return
	}

	green := color.New(color.FgGreen)
	green.Printf("  Logged in as %s", user.Username)
	if roles := a.session.Roles(); len(roles) > 0 {
		fmt.Printf(" (%s)", strings.Join(roles, ", "))
	}
	fmt.Println()

	if stats, err := a.client.KnowledgeBaseStats(ctx); err == nil {
		fmt.Printf("  Knowledge bases: %d, documents: %d, total size: %s\n",
			stats.KnowledgeBaseCount, stats.DocumentCount,
			format.FileSize(int64(stats.TotalSize), 1))
	}

	fmt.Println("\n  Screens:")
	for _, route := range a.table.Routes() {
		if !route.Meta.RequiresAuth || route.Redirect != "" {
			continue
		}
		if route.Meta.Permission != "" && !a.session.HasPermission(route.Meta.Permission) {
			continue
		}
		fmt.Printf("    %-28s %s\n", route.Path, route.Meta.Title)
	}
}

func (a *app) renderKnowledge(ctx context.Context) {
	kbs, err := a.client.ListKnowledgeBases(ctx, "")
	if err != nil {
		a.printErr(err)
		return
	}
	if len(kbs) == 0 {
		fmt.Println("  (no knowledge bases)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tTYPE\tPUBLIC\tSTATUS\tCREATED")
	fmt.Fprintln(w, "  --\t----\t----\t------\t------\t-------")
	for _, kb := range kbs {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%t\t%s\t%s\n",
			kb.ID, format.Truncate(kb.Name, 24), kb.Type, kb.IsPublic,
			kb.Status, format.RelativeTime(kb.CreatedAt))
	}
	w.Flush()
}

func (a *app) renderDocuments(ctx context.Context) {
	if stats, err := a.client.DocumentStats(ctx); err == nil {
		fmt.Printf("  %d documents, %s total\n\n",
			stats.Total, format.FileSize(stats.TotalSize, 1))
	}

	kbs, err := a.client.ListKnowledgeBases(ctx, "")
	if err != nil {
		a.printErr(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tTITLE\tKNOWLEDGE BASE\tSIZE\tSTATUS\tUPDATED")
	fmt.Fprintln(w, "  --\t-----\t--------------\t----\t------\t-------")
	rows := 0
	for _, kb := range kbs {
		docs, err := a.client.ListKnowledgeBaseDocuments(ctx, kb.ID)
		if err != nil {
			continue
		}
		for _, doc := range docs {
			updated := doc.CreatedAt
			if doc.UpdatedAt != nil {
				updated = *doc.UpdatedAt
			}
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n",
				doc.ID, format.Truncate(doc.Title, 28), format.Truncate(kb.Name, 20),
				format.FileSize(doc.FileSize, 1), doc.Status,
				format.RelativeTime(updated))
			rows++
		}
	}
	w.Flush()
	if rows == 0 {
		fmt.Println("  (no documents)")
	}
}

func (a *app) renderChat(ctx context.Context) {
	sessions, err := a.client.ListChatSessions(ctx, 0, 10)
	if err != nil {
		a.printErr(err)
		return
	}

	if len(sessions) > 0 {
		fmt.Println("  Recent sessions:")
		for _, s := range sessions {
			marker := " "
			if a.chatSession != nil && a.chatSession.ID == s.ID {
				marker = "*"
			}
			title := s.Title
			if title == "" {
				title = "(untitled)"
			}
			fmt.Printf("  %s %d: %s (%s)\n", marker, s.ID,
				format.Truncate(title, 40), format.RelativeTime(s.CreatedAt))
		}
		fmt.Println()
	}
	fmt.Println("  Type a message to chat. A new session starts automatically.")
}

func (a *app) renderModels(ctx context.Context) {
	providers, err := a.client.ListProviders(ctx)
	if err != nil {
		a.printErr(err)
		return
	}
	if len(providers) == 0 {
		fmt.Println("  (no providers configured)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  PROVIDER\tAVAILABLE\tMODELS")
	fmt.Fprintln(w, "  --------\t---------\t------")
	for _, p := range providers {
		fmt.Fprintf(w, "  %s\t%t\t%s\n", p.Name, p.Available,
			format.Truncate(strings.Join(p.Models, ", "), 50))
	}
	w.Flush()
}

func (a *app) renderUsers(ctx context.Context) {
	page, err := a.client.ListUsers(ctx, 1, 20, "")
	if err != nil {
		a.printErr(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tUSERNAME\tEMAIL\tACTIVE\tROLES")
	fmt.Fprintln(w, "  --\t--------\t-----\t------\t-----")
	for _, u := range page.Items {
		names := make([]string, len(u.Roles))
		for i, r := range u.Roles {
			names[i] = r.Name
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Email, u.IsActive, strings.Join(names, ", "))
	}
	w.Flush()
	fmt.Printf("  (%d of %d users)\n", len(page.Items), page.Total)
	fmt.Println("  /user-add creates an account; /passwd <id> resets a password.")
}

// gradePassword rejects weak passwords before they reach the backend.
func gradePassword(password string) (format.PasswordStrength, error) {
	strength := format.ValidatePassword(password)
	if strength.Level == "weak" {
		return strength, fmt.Errorf("password too weak: %s", strings.Join(strength.Suggestions, ", "))
	}
	return strength, nil
}

// promptNewPassword reads and grades a password for account management.
func (a *app) promptNewPassword(ctx context.Context) (string, error) {
	password, err := a.readPassword(ctx)
	if err != nil {
		return "", err
	}
	strength, err := gradePassword(password)
	if err != nil {
		return "", err
	}
	if strength.Level == "medium" {
		color.Yellow("Password strength: medium (%d/100)", strength.Score)
	}
	return password, nil
}

func (a *app) cmdUserAdd(ctx context.Context) {
	fmt.Print("Username: ")
	line, err := a.readLine(ctx)
	if err != nil {
		return
	}
	username := strings.TrimSpace(line)
	if username == "" {
		return
	}

	fmt.Print("Email: ")
	line, err = a.readLine(ctx)
	if err != nil {
		return
	}
	email := strings.TrimSpace(line)

	password, err := a.promptNewPassword(ctx)
	if err != nil {
		a.printErr(err)
		return
	}

	user, err := a.client.CreateUser(ctx, gateway.UserCreate{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		a.printErr(err)
		return
	}
	color.Green("Created user %s (id %d)", user.Username, user.ID)
}

func (a *app) cmdPasswd(ctx context.Context, args string) {
	id, err := strconv.Atoi(args)
	if err != nil {
		color.Yellow("Usage: /passwd <user-id>")
		return
	}

	password, err := a.promptNewPassword(ctx)
	if err != nil {
		a.printErr(err)
		return
	}

	if err := a.client.ResetUserPassword(ctx, id, password); err != nil {
		a.printErr(err)
		return
	}
	color.Green("Password updated for user %d", id)
}

func (a *app) renderRoles(ctx context.Context) {
	page, err := a.client.ListRoles(ctx, 1, 20, "")
	if err != nil {
		a.printErr(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tDESCRIPTION\tPERMISSIONS")
	fmt.Fprintln(w, "  --\t----\t-----------\t-----------")
	for _, r := range page.Items {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%d\n",
			r.ID, r.Name, format.Truncate(r.Description, 40), len(r.Permissions))
	}
	w.Flush()
}

func (a *app) renderPermissions(ctx context.Context) {
	page, err := a.client.ListPermissions(ctx, 1, 50, "")
	if err != nil {
		a.printErr(err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tMENU\tDESCRIPTION")
	fmt.Fprintln(w, "  --\t----\t----\t-----------")
	for _, p := range page.Items {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n",
			p.ID, p.Name, p.MenuName, format.Truncate(p.Description, 40))
	}
	w.Flush()
}

func (a *app) renderSettings() {
	theme := "light"
	if a.state.DarkMode() {
		theme = "dark"
	}
	fmt.Printf("  Gateway:  %s\n", a.cfg.Gateway.BaseURL)
	fmt.Printf("  State:    %s\n", a.cfg.State.Path)
	fmt.Printf("  Theme:    %s\n", theme)
	fmt.Printf("  Sidebar:  collapsed=%t\n", a.state.SidebarCollapsed())
	fmt.Printf("  Version:  %s\n", appstate.Version)
}

func (a *app) cmdLogin(ctx context.Context, args string) {
	username := args
	if username == "" {
		username = a.store.Get(credstore.KeyRememberedUsername)
	}
	if username == "" {
		fmt.Print("Username: ")
		line, err := a.readLine(ctx)
		if err != nil {
			return
		}
		username = strings.TrimSpace(line)
		if username == "" {
			return
		}
	}

	password, err := a.readPassword(ctx)
	if err != nil {
		a.printErr(err)
		return
	}

	fmt.Print("Remember username? [y/N]: ")
	answer, err := a.readLine(ctx)
	if err != nil {
		return
	}
	rememberMe := strings.EqualFold(strings.TrimSpace(answer), "y")

	if err := a.session.Login(ctx, username, password, rememberMe); err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			return
		}
		a.printErr(err)
		return
	}

	color.Green("Logged in as %s", username)
	a.registrar.Register()
	a.navigate(ctx, a.guard.PostLoginTarget())
}

// readPassword reads a password without echo when stdin is a terminal.
func (a *app) readPassword(ctx context.Context) (string, error) {
	fmt.Print("Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}

	line, err := a.readLine(ctx)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) cmdLogout() {
	if !a.session.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return
	}
	a.session.Logout()
	a.chatSession = nil
	a.currentPath = nav.LoginPath
	fmt.Println("Logged out.")
}

func (a *app) cmdWhoami() {
	user := a.session.User()
	if user == nil {
		fmt.Println("Not logged in.")
		return
	}

	cyan := color.New(color.FgCyan)
	cyan.Println("  Identity")
	cyan.Println("  --------")
	fmt.Printf("  Username:  %s\n", user.Username)
	if user.Email != "" {
		fmt.Printf("  Email:     %s\n", user.Email)
	}
	if user.FullName != "" {
		fmt.Printf("  Name:      %s\n", user.FullName)
	}
	fmt.Printf("  Active:    %t\n", user.IsActive)
	if roles := a.session.Roles(); len(roles) > 0 {
		color.Green("  Roles:     %s", strings.Join(roles, ", "))
	}

	if info, err := session.InspectToken(a.session.Token()); err == nil && !info.ExpiresAt.IsZero() {
		if info.Expired {
			color.Red("  Token:     expired %s", format.RelativeTime(info.ExpiresAt))
		} else {
			fmt.Printf("  Token:     valid until %s\n", info.ExpiresAt.Format("Jan 02 15:04"))
		}
	}
}

func (a *app) cmdPermissions() {
	perms := a.session.Permissions()
	if len(perms) == 0 {
		fmt.Println("No permissions held.")
		return
	}
	sort.Strings(perms)
	fmt.Printf("Permissions (%d):\n", len(perms))
	for _, p := range perms {
		fmt.Printf("  %s\n", p)
	}
}

func (a *app) cmdRoutes() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  PATH\tNAME\tTITLE\tAUTH\tPERMISSION")
	fmt.Fprintln(w, "  ----\t----\t-----\t----\t----------")
	for _, route := range a.table.Routes() {
		if route.Redirect != "" {
			fmt.Fprintf(w, "  %s\t%s\t-> %s\t\t\n", route.Path, route.Name, route.Redirect)
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%t\t%s\n",
			route.Path, route.Name, route.Meta.Title,
			route.Meta.RequiresAuth, route.Meta.Permission)
	}
	w.Flush()
}

// chatTurn streams one chat exchange. Outside the chat screen it nudges
// the user toward /open.
func (a *app) chatTurn(ctx context.Context, message string) {
	if a.currentPath != "/admin/chat" && a.currentPath != "/chat" {
		color.Yellow("Not on the chat screen. /open /admin/chat first, or /help for commands.")
		return
	}

	if a.chatSession == nil {
		created, err := a.client.CreateChatSession(ctx, gateway.ChatSessionCreate{
			Title: format.Truncate(message, 40),
		})
		if err != nil {
			a.printErr(err)
			return
		}
		a.chatSession = created
		fmt.Printf("Started session %d\n", created.ID)
	}

	req := gateway.StreamChatRequest{
		SessionID:      a.chatSession.ID,
		Message:        message,
		IncludeHistory: true,
	}
	err := a.client.StreamChat(ctx, req, func(evt gateway.StreamEvent) {
		switch evt.Type {
		case "message":
			fmt.Print(evt.Content)
		case "sources":
			color.New(color.Faint).Printf("\n[%d sources]\n", len(evt.Sources))
		case "done":
			fmt.Println()
		}
	})
	if err != nil {
		a.printErr(err)
	}
}

// printErr renders an error with the backend's message when one exists.
func (a *app) printErr(err error) {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		color.Red("Error: %s", apiErr.Message)
		return
	}
	color.Red("Error: %v", err)
}
