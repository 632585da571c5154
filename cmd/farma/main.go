// Command farma is the interactive terminal client for the pharmacy API.
// It wires the session store, the API facade, the role-gated router, and the
// page views into a small read-eval loop: one command, one request, printed
// output.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mylittlefarma/pharmacy-api/client"
	"github.com/mylittlefarma/pharmacy-api/client/router"
	"github.com/mylittlefarma/pharmacy-api/client/session"
	"github.com/mylittlefarma/pharmacy-api/client/views"
	"github.com/mylittlefarma/pharmacy-api/entities"
)

// consoleNotifier prints a blocking alert, the terminal stand-in for the
// modal the web client showed.
type consoleNotifier struct {
	in *bufio.Scanner
}

func (n *consoleNotifier) Notify(message string) {
	fmt.Printf("\n  !! %s\n  Press Enter to continue.", message)
	n.in.Scan()
}

type app struct {
	api      client.API
	sessions session.Store
	router   *router.Router
	in       *bufio.Scanner
	notify   *consoleNotifier

	// The active screen's view, if it accepts follow-up actions. A fresh
	// view is created on every navigation, so drafts never outlive their
	// screen.
	order        *views.OrderView
	pending      *views.PendingOrdersView
	home         *views.HomeView
	prescription *views.CreatePrescriptionView
}

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("FARMA_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	in := bufio.NewScanner(os.Stdin)
	notify := &consoleNotifier{in: in}

	a := &app{
		api:      client.New(baseURL),
		sessions: session.NewFileStore(session.DefaultPath()),
		in:       in,
		notify:   notify,
	}
	a.router = router.New(a.sessions, notify)
	a.registerRoutes()

	fmt.Println("farma - pharmacy terminal client")
	fmt.Printf("server: %s\n", baseURL)
	fmt.Println(`type "help" for commands`)

	if err := a.router.Open(""); err != nil {
		fmt.Println("error:", err)
	}

	for {
		fmt.Printf("\n[%s]> ", a.router.Current())
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := a.dispatch(line); err != nil {
			a.notify.Notify(err.Error())
		}
	}
}

func (a *app) registerRoutes() {
	a.router.Register(router.RouteLogin, a.showLogin)
	a.router.Register(router.RouteSignup, a.showSignup)
	a.router.Register(router.RouteHome, a.showHome)
	a.router.Register(router.RouteOrder, a.showOrder)
	a.router.Register(router.RouteMyOrders, a.showMyOrders)
	a.router.Register(router.RoutePendingOrders, a.showPendingOrders)
	a.router.Register(router.RouteInventory, a.showInventory)
	a.router.Register(router.RouteCreatePrescription, a.showCreatePrescription)
	a.router.Register(router.RoutePrescriptions, a.showPrescriptions)
}

// dispatch handles one typed command for the active screen.
func (a *app) dispatch(line string) error {
	ctx := context.Background()
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "go":
		if len(args) != 1 {
			return fmt.Errorf("usage: go <route>")
		}
		return a.router.Open(args[0])
	case "refresh":
		return a.router.Open(a.router.Current())
	}

	switch a.router.Current() {
	case router.RouteOrder:
		return a.orderCommand(ctx, cmd, args)
	case router.RoutePendingOrders:
		return a.pendingCommand(ctx, cmd, args)
	case router.RouteHome, router.RouteInventory:
		return a.inventoryCommand(ctx, cmd, args)
	case router.RouteCreatePrescription:
		return a.prescriptionCommand(ctx, cmd, args)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}

func (a *app) printHelp() {
	fmt.Println(`commands:
  go <route>          navigate (home, order, my-orders, pending-orders,
                      inventory, create-prescription, prescriptions,
                      login, signup)
  refresh             re-render the current screen
  quit                exit

order screen:
  add <id>            add a medication (again to bump quantity)
  qty <id> <n>        set a line's quantity
  remove <id>         drop a line
  submit              place the order

pending-orders screen:
  fulfill <id>        fulfill an order
  reject <id> <why>   reject an order with a reason

home/inventory screen (pharmacist):
  additem <name> <qty> <price>

create-prescription screen:
  add <id> <dosage...>   prescribe a medication
  remove <id>            drop a line
  patient <name>         set the patient
  notes <text...>        set notes
  submit                 create the prescription`)
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) showLogin(_ entities.Session) error {
	view := views.NewLoginView(a.api, a.sessions)
	fmt.Println("\n" + view.Render())

	username := a.prompt("username")
	password := a.prompt("password")

	sess, err := view.Submit(context.Background(), username, password)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", sess.Username, sess.Role)
	return a.router.Open(router.RouteHome)
}

func (a *app) showSignup(_ entities.Session) error {
	view := views.NewSignupView(a.api, a.sessions)
	fmt.Println("\n" + view.Render())

	username := a.prompt("username")
	email := a.prompt("email")
	password := a.prompt("password")
	confirm := a.prompt("confirm password")
	role := entities.Role(a.prompt("role"))

	sess, err := view.Submit(context.Background(), username, email, password, confirm, role)
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s (%s)\n", sess.Username, sess.Role)
	return a.router.Open(router.RouteHome)
}

func (a *app) showHome(sess entities.Session) error {
	a.home = views.NewHomeView(a.api)
	text, err := a.home.Render(context.Background(), sess)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	return nil
}

// showInventory is the pharmacist's inventory management screen; it reuses
// the home rendering with the add form active.
func (a *app) showInventory(sess entities.Session) error {
	return a.showHome(sess)
}

func (a *app) showOrder(sess entities.Session) error {
	a.order = views.NewOrderView(a.api)
	return a.renderOrder(sess)
}

func (a *app) renderOrder(sess entities.Session) error {
	text, err := a.order.Render(context.Background(), sess)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	return nil
}

func (a *app) showMyOrders(sess entities.Session) error {
	view := views.NewMyOrdersView(a.api)
	text, err := view.Render(context.Background(), sess)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	return nil
}

func (a *app) showPendingOrders(sess entities.Session) error {
	a.pending = views.NewPendingOrdersView(a.api)
	text, err := a.pending.Render(context.Background(), sess)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	return nil
}

func (a *app) showCreatePrescription(sess entities.Session) error {
	a.prescription = views.NewCreatePrescriptionView(a.api)
	text, err := a.prescription.Render(context.Background(), sess)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	return nil
}

func (a *app) showPrescriptions(sess entities.Session) error {
	view := views.NewPrescriptionsView(a.api)
	text, err := view.Render(context.Background(), sess)
	if err != nil {
		return err
	}
	fmt.Println("\n" + text)
	return nil
}

func (a *app) currentSession() (entities.Session, error) {
	return a.sessions.Get()
}

func (a *app) orderCommand(ctx context.Context, cmd string, args []string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	switch cmd {
	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: add <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medication id: %s", args[0])
		}
		med, err := a.findMedication(ctx, id)
		if err != nil {
			return err
		}
		a.order.Draft.Add(med)
		return a.renderOrder(sess)

	case "qty":
		if len(args) != 2 {
			return fmt.Errorf("usage: qty <id> <n>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medication id: %s", args[0])
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", args[1])
		}
		if err := a.order.Draft.SetQuantity(id, n); err != nil {
			return err
		}
		return a.renderOrder(sess)

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medication id: %s", args[0])
		}
		a.order.Draft.Remove(id)
		return a.renderOrder(sess)

	case "submit":
		id, err := a.order.Submit(ctx, sess, "", "")
		if err != nil {
			return err
		}
		fmt.Printf("Order #%d placed.\n", id)
		return a.router.Open(router.RouteMyOrders)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}

func (a *app) pendingCommand(ctx context.Context, cmd string, args []string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	switch cmd {
	case "fulfill":
		if len(args) != 1 {
			return fmt.Errorf("usage: fulfill <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id: %s", args[0])
		}
		if err := a.pending.Fulfill(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Order #%d fulfilled.\n", id)
		return a.showPendingOrders(sess)

	case "reject":
		if len(args) < 2 {
			return fmt.Errorf("usage: reject <id> <reason>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id: %s", args[0])
		}
		if err := a.pending.Reject(ctx, id, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		fmt.Printf("Order #%d rejected.\n", id)
		return a.showPendingOrders(sess)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}

func (a *app) inventoryCommand(ctx context.Context, cmd string, args []string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	if cmd != "additem" {
		return fmt.Errorf("unknown command: %s", cmd)
	}
	if sess.Role != entities.RolePharmacist {
		return fmt.Errorf("only pharmacists can add inventory")
	}
	if len(args) < 3 {
		return fmt.Errorf("usage: additem <name> <qty> <price>")
	}

	// Name may contain spaces; quantity and price are the last two fields.
	qty, err := strconv.Atoi(args[len(args)-2])
	if err != nil {
		return fmt.Errorf("invalid quantity: %s", args[len(args)-2])
	}
	price, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil {
		return fmt.Errorf("invalid price: %s", args[len(args)-1])
	}
	name := strings.Join(args[:len(args)-2], " ")

	if err := a.home.AddItem(ctx, name, qty, price); err != nil {
		return err
	}
	fmt.Println("Item added.")
	return a.showHome(sess)
}

func (a *app) prescriptionCommand(ctx context.Context, cmd string, args []string) error {
	sess, err := a.currentSession()
	if err != nil {
		return err
	}

	switch cmd {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add <id> <dosage>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medication id: %s", args[0])
		}
		med, err := a.findMedication(ctx, id)
		if err != nil {
			return err
		}
		err = a.prescription.Draft.Add(entities.PrescriptionItem{
			MedicationID: med.ID,
			Name:         med.Name,
			Dosage:       strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		text, err := a.prescription.Render(ctx, sess)
		if err != nil {
			return err
		}
		fmt.Println("\n" + text)
		return nil

	case "remove":
		if len(args) != 1 {
			return fmt.Errorf("usage: remove <id>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid medication id: %s", args[0])
		}
		a.prescription.Draft.Remove(id)
		return nil

	case "patient":
		if len(args) == 0 {
			return fmt.Errorf("usage: patient <name>")
		}
		a.prescription.PatientName = strings.Join(args, " ")
		return nil

	case "notes":
		a.prescription.Notes = strings.Join(args, " ")
		return nil

	case "submit":
		id, err := a.prescription.Submit(ctx, sess)
		if err != nil {
			return err
		}
		fmt.Printf("Prescription #%d created.\n", id)
		return a.router.Open(router.RoutePrescriptions)
	}

	return fmt.Errorf("unknown command: %s", cmd)
}

// findMedication looks a medication up by id in a fresh inventory fetch.
func (a *app) findMedication(ctx context.Context, id int64) (entities.Medication, error) {
	medications, err := a.api.ListInventory(ctx)
	if err != nil {
		return entities.Medication{}, err
	}
	for _, m := range medications {
		if m.ID == id {
			return m, nil
		}
	}
	return entities.Medication{}, fmt.Errorf("no medication with id %d", id)
}
