package dns

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"dario.lol/hover/internal/executor"
	"dario.lol/hover/internal/hoverapi"
	"dario.lol/hover/internal/ui"
	"dario.lol/hover/internal/ui/response"
	"dario.lol/hover/pkg/hover"
	"github.com/spf13/cobra"
)

var createdRecordKey = executor.NewKey[*RecordInformation]("createdRecord")

var createCmd = &cobra.Command{
	Use:   "create <domain> <name> <type> <content>",
	Short: "Creates a new A or MX record",
	Long: `Creates a new DNS record.

For A records content is the IPv4 address. For MX records content is
"<priority> <address>", quoted as a single argument.`,
	Example: `  hover dns create example.com www A 192.0.2.10
  hover dns create example.com @ MX "10 192.0.2.25"`,
	Args: cobra.ExactArgs(4),
	Run: executor.New().
		WithClient().
		WithDomain().
		Step(executor.NewStep(createdRecordKey, "Creating DNS record").Func(createDnsRecord)).
		Invalidates(func(ctx *executor.Context) []string {
			return domainTags(ctx.DomainID)
		}).
		Display(printCreateDnsResult).
		Run(),
}

func init() {
	DnsCmd.AddCommand(createCmd)
}

type mxContent struct {
	priority uint16
	address  string
}

func parseMXContent(content string) (mxContent, error) {
	parts := strings.Fields(content)
	if len(parts) != 2 {
		return mxContent{}, fmt.Errorf("invalid MX record content %q. Expected: '<priority> <address>'", content)
	}
	priority, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return mxContent{}, fmt.Errorf("invalid MX priority %q: %w", parts[0], err)
	}
	return mxContent{priority: uint16(priority), address: parts[1]}, nil
}

func validateIPv4(address string) error {
	ip := net.ParseIP(address)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("%q is not an IPv4 address", address)
	}
	return nil
}

func createDnsRecord(ctx *executor.Context, _ chan<- string) (*RecordInformation, error) {
	name := hoverapi.RelativeName(ctx.Args[1], ctx.DomainName)
	recordType := hover.RecordType(strings.ToUpper(ctx.Args[2]))
	content := ctx.Args[3]

	var (
		record *hover.DNSRecord
		err    error
	)
	switch recordType {
	case hover.RecordTypeA:
		if err := validateIPv4(content); err != nil {
			return nil, err
		}
		record, err = ctx.Client.CreateARecord(ctx.Ctx(), ctx.DomainID, name, content)
	case hover.RecordTypeMX:
		mx, parseErr := parseMXContent(content)
		if parseErr != nil {
			return nil, parseErr
		}
		content = fmt.Sprintf("%d %s", mx.priority, mx.address)
		record, err = ctx.Client.CreateMXRecord(ctx.Ctx(), ctx.DomainID, name, mx.priority, mx.address)
	default:
		return nil, fmt.Errorf("unsupported record type: %s (supported: A, MX)", ctx.Args[2])
	}
	if err != nil {
		return nil, fmt.Errorf("error creating DNS record: %w", err)
	}

	info := &RecordInformation{
		DomainID:   ctx.DomainID,
		DomainName: ctx.DomainName,
		RecordName: name,
		Content:    content,
	}
	if record != nil {
		info.RecordID = record.ID
		if record.Name != "" {
			info.RecordName = record.Name
		}
	}
	return info, nil
}

func printCreateDnsResult(ctx *executor.Context) {
	rb := response.New()
	if ctx.Error != nil {
		rb.Error("Error creating DNS record", ctx.Error).Display()
		return
	}
	record := executor.Get(ctx, createdRecordKey)
	id := record.RecordID
	if id == "" {
		id = "id pending"
	}
	rb.FooterSuccessf("Successfully created DNS record %s (%s) -> %s in domain %s %s", record.RecordName, id, record.Content, record.DomainName, ui.Muted(fmt.Sprintf("(took %v)", ctx.Duration))).Display()
}
