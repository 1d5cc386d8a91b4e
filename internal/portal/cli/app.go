// Package cli implements the portal command: a small terminal client for
// the church platform API covering accounts, profile edits and donations.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	authmodels "church-platform-backend/internal/features/auth/models"
	donmodels "church-platform-backend/internal/features/donation/models"
	"church-platform-backend/internal/portal/api"
	"church-platform-backend/internal/portal/checkout"
	"church-platform-backend/internal/portal/session"
)

// App wires the API client, the session manager and the checkout poller
// behind the portal subcommands.
type App struct {
	client  *api.Client
	session *session.Manager
	out     io.Writer
}

// Config carries the two knobs the portal needs.
type Config struct {
	BaseURL   string
	TokenPath string
}

func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("CHURCH_API_URL"),
		TokenPath: os.Getenv("CHURCH_TOKEN_PATH"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	return cfg
}

func NewApp(cfg Config) (*App, error) {
	store, err := session.NewFileStore(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	client := api.NewClient(cfg.BaseURL)
	return &App{
		client:  client,
		session: session.NewManager(client, store),
		out:     os.Stdout,
	}, nil
}

const usage = `Usage: portal <commande> [options]

Commandes:
  register   créer un compte membre
  login      se connecter
  me         afficher le profil courant
  update     modifier le profil
  logout     se déconnecter
  packages   lister les paquets de dons
  donate     démarrer un don
  confirm    confirmer un paiement après retour du prestataire
`

// Run dispatches one subcommand. The session is restored first so every
// command sees the persisted credential.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("commande manquante")
	}

	if err := a.session.Initialize(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "me":
		return a.me(ctx)
	case "update":
		return a.update(ctx, args[1:])
	case "logout":
		return a.logout()
	case "packages":
		return a.packages(ctx)
	case "donate":
		return a.donate(ctx, args[1:])
	case "confirm":
		return a.confirm(ctx, args[1:])
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("commande inconnue: %s", args[0])
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "adresse e-mail")
	username := fs.String("username", "", "nom d'utilisateur")
	password := fs.String("password", "", "mot de passe")
	confirm := fs.String("confirm", "", "confirmation du mot de passe")
	firstName := fs.String("first-name", "", "prénom")
	lastName := fs.String("last-name", "", "nom")
	phone := fs.String("phone", "", "téléphone (optionnel)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := authmodels.RegisterRequest{
		Email:     *email,
		Username:  *username,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if *phone != "" {
		req.Phone = phone
	}

	if err := a.session.Register(ctx, req, *confirm); err != nil {
		return fmt.Errorf("%s", session.Reason(err))
	}
	fmt.Fprintf(a.out, "Bienvenue, %s!\n", a.session.User().FirstName)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "adresse e-mail")
	password := fs.String("password", "", "mot de passe")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.Login(ctx, *email, *password); err != nil {
		return fmt.Errorf("%s", session.Reason(err))
	}
	fmt.Fprintf(a.out, "Connecté en tant que %s\n", a.session.User().Email)
	return nil
}

func (a *App) me(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("non connecté")
	}
	u := a.session.User()
	fmt.Fprintf(a.out, "%s %s <%s>\n", u.FirstName, u.LastName, u.Email)
	fmt.Fprintf(a.out, "Rôle: %s  Dons cumulés: %.2f\n", u.Role, u.DonationTotal)
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "prénom")
	lastName := fs.String("last-name", "", "nom")
	phone := fs.String("phone", "", "téléphone")
	address := fs.String("address", "", "adresse")
	bio := fs.String("bio", "", "biographie")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req authmodels.UpdateProfileRequest
	if *firstName != "" {
		req.FirstName = firstName
	}
	if *lastName != "" {
		req.LastName = lastName
	}
	if *phone != "" {
		req.Phone = phone
	}
	if *address != "" {
		req.Address = address
	}
	if *bio != "" {
		req.Bio = bio
	}

	if err := a.session.UpdateProfile(ctx, req); err != nil {
		return fmt.Errorf("%s", session.Reason(err))
	}
	fmt.Fprintln(a.out, "Profil mis à jour")
	return nil
}

func (a *App) logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Déconnecté")
	return nil
}

func (a *App) packages(ctx context.Context) error {
	packages, err := a.client.Packages(ctx)
	if err != nil {
		return fmt.Errorf("%s", session.Reason(err))
	}
	for _, p := range packages {
		marker := " "
		if p.Suggested {
			marker = "*"
		}
		if p.Amount > 0 {
			fmt.Fprintf(a.out, "%s %-12s %8.2f USD  %s\n", marker, p.ID, p.Amount, p.Description)
		} else {
			fmt.Fprintf(a.out, "%s %-12s   libre    %s\n", marker, p.ID, p.Description)
		}
	}
	return nil
}

func (a *App) donate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("donate", flag.ContinueOnError)
	packageID := fs.String("package", "", "identifiant du paquet (blessing, support, ...)")
	amount := fs.Float64("amount", 0, "montant pour un don libre")
	message := fs.String("message", "", "message (optionnel)")
	anonymous := fs.Bool("anonymous", false, "don anonyme")
	origin := fs.String("origin", "http://localhost:3000", "origine du site pour le retour")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := donmodels.CheckoutRequest{
		DonationType: donmodels.TypeOneTime,
		Anonymous:    *anonymous,
		OriginURL:    *origin,
	}
	if *packageID != "" {
		req.PackageID = packageID
	}
	if *amount > 0 {
		req.Amount = amount
	}
	if *message != "" {
		req.Message = message
	}

	resp, err := a.client.CreateCheckout(ctx, req)
	if err != nil {
		return fmt.Errorf("%s", session.Reason(err))
	}
	fmt.Fprintf(a.out, "Ouvrez cette page pour payer:\n  %s\n", resp.URL)
	fmt.Fprintf(a.out, "Puis exécutez: portal confirm -session %s\n", resp.SessionID)
	return nil
}

func (a *App) confirm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ContinueOnError)
	sessionID := fs.String("session", "", "identifiant de session de paiement")
	returnURL := fs.String("url", "", "URL de retour complète (alternative à -session)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id := *sessionID
	if id == "" && *returnURL != "" {
		detected, _, ok := checkout.DetectReturn(*returnURL)
		if !ok {
			return fmt.Errorf("aucune session de paiement dans l'URL")
		}
		id = detected
	}
	if id == "" {
		return fmt.Errorf("précisez -session ou -url")
	}

	poller := checkout.NewPoller(a.client, &printNotifier{out: a.out})
	outcome := poller.Poll(ctx, id)
	if outcome != checkout.OutcomePaid {
		return fmt.Errorf("paiement non confirmé (%s)", outcome)
	}
	return nil
}

// printNotifier writes the one-shot poll outcome to the terminal.
type printNotifier struct {
	out io.Writer
}

func (n *printNotifier) PaymentSucceeded(amount float64, currency string) {
	fmt.Fprintf(n.out, "Merci pour votre don de %.2f %s!\n", amount, currency)
}

func (n *printNotifier) PaymentFailed(message string) {
	fmt.Fprintln(n.out, message)
}
