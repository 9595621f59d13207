package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/monostate/Employees-Airdrop-Rewards-MCP/workflow"
)

// toolHandler executes one tool call against the orchestrator and returns the
// human-readable reply.
type toolHandler func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error)

// toolDescriptor couples a tool's wire definition with its handler. The input
// schema is validated before the handler runs.
type toolDescriptor struct {
	Name        string
	Description string
	InputSchema string
	Handler     toolHandler
}

// emptySchema accepts an empty argument object.
const emptySchema = `{"type":"object","additionalProperties":false}`

// toolTable is the closed set of tools this server exposes, in the order the
// workflow expects them to be used.
var toolTable = []toolDescriptor{
	{
		Name:        "connect_wallet",
		Description: "Connect the funding wallet from a base58-encoded private key. Optionally switch to a specific RPC endpoint.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"privateKey": {"type": "string", "minLength": 1, "description": "Base58-encoded 64-byte (or 32-byte seed) private key"},
				"rpcUrl": {"type": "string", "description": "RPC endpoint URL; defaults to the configured network"}
			},
			"required": ["privateKey"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				PrivateKey string `json:"privateKey"`
				RPCURL     string `json:"rpcUrl"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.ConnectWallet(ctx, p.PrivateKey, p.RPCURL)
		},
	},
	{
		Name:        "connect_custodial_wallet",
		Description: "Connect a custody-held funding wallet addressed by email. Creates the local funding keypair on first use.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"email": {"type": "string", "minLength": 3, "description": "Email address the custodial wallet is held under"},
				"apiKey": {"type": "string", "description": "Custody provider API key; omitted means simulated custody"}
			},
			"required": ["email"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				Email  string `json:"email"`
				APIKey string `json:"apiKey"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.ConnectCustodialWallet(ctx, p.Email, p.APIKey)
		},
	},
	{
		Name:        "check_balance",
		Description: "Refresh and report the connected wallet's SOL balance.",
		InputSchema: emptySchema,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, _ json.RawMessage) (string, error) {
			return o.CheckBalance(ctx)
		},
	},
	{
		Name:        "create_token",
		Description: "Create the token mint with the full supply minted to the connected wallet. One token per session.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"name": {"type": "string", "minLength": 1},
				"symbol": {"type": "string", "minLength": 1},
				"supply": {"type": "integer", "minimum": 1},
				"decimals": {"type": "integer", "minimum": 0, "maximum": 9, "default": 9}
			},
			"required": ["name", "symbol", "supply"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			p := struct {
				Name     string `json:"name"`
				Symbol   string `json:"symbol"`
				Supply   uint64 `json:"supply"`
				Decimals *uint8 `json:"decimals"`
			}{}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			decimals := uint8(9)
			if p.Decimals != nil {
				decimals = *p.Decimals
			}
			return o.CreateToken(ctx, p.Name, p.Symbol, p.Supply, decimals)
		},
	},
	{
		Name:        "add_liquidity",
		Description: "Seed the token's liquidity pool with tokens and SOL from the connected wallet.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"tokenAmount": {"type": "number", "exclusiveMinimum": 0},
				"solAmount": {"type": "number", "exclusiveMinimum": 0}
			},
			"required": ["tokenAmount", "solAmount"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				TokenAmount float64 `json:"tokenAmount"`
				SolAmount   float64 `json:"solAmount"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.AddLiquidity(ctx, p.TokenAmount, p.SolAmount)
		},
	},
	{
		Name:        "generate_wallets",
		Description: "Provision a custodial wallet for each employee. One employee per line: an email, optionally preceded by a name and a comma.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"employeesText": {"type": "string", "minLength": 1, "description": "Employee list, one \"[name,] email\" per line"},
				"apiKey": {"type": "string", "description": "Custody provider API key; omitted means simulated custody"}
			},
			"required": ["employeesText"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				EmployeesText string `json:"employeesText"`
				APIKey        string `json:"apiKey"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.GenerateWallets(ctx, p.EmployeesText, p.APIKey)
		},
	},
	{
		Name:        "upload_csv",
		Description: "Import employee roles from a CSV file. The header must include an email column; role and name columns are optional. Rows never create employees.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"filePath": {"type": "string", "minLength": 1, "description": "Path to the CSV file on the server host"}
			},
			"required": ["filePath"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				FilePath string `json:"filePath"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.ImportCSV(ctx, p.FilePath)
		},
	},
	{
		Name:        "calculate_amounts",
		Description: "Assign a token amount to every employee: a uniform amount, or per-role amounts with built-in defaults per role.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"uniformAmount": {"type": "number", "exclusiveMinimum": 0, "description": "One amount for everyone; overrides role amounts"},
				"roleAmounts": {
					"type": "object",
					"additionalProperties": {"type": "number", "minimum": 0},
					"description": "Per-role amount overrides, keyed by role name"
				}
			},
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				UniformAmount *float64           `json:"uniformAmount"`
				RoleAmounts   map[string]float64 `json:"roleAmounts"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.CalculateAmounts(ctx, p.UniformAmount, p.RoleAmounts)
		},
	},
	{
		Name:        "calculate_fees",
		Description: "Estimate the network fees for distributing to the current employee list.",
		InputSchema: emptySchema,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, _ json.RawMessage) (string, error) {
			return o.CalculateFees(ctx)
		},
	},
	{
		Name:        "start_airdrop",
		Description: "Distribute the allocated token amounts to every employee wallet, in batches of at most five recipients.",
		InputSchema: emptySchema,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, _ json.RawMessage) (string, error) {
			return o.StartAirdrop(ctx)
		},
	},
	{
		Name:        "send_emails",
		Description: "Email every employee about the tokens they received. Requires the airdrop to have completed.",
		InputSchema: `{
			"type": "object",
			"properties": {
				"fromEmail": {"type": "string", "minLength": 3},
				"subject": {"type": "string"},
				"apiKey": {"type": "string", "description": "Email provider API key; omitted means simulated delivery"}
			},
			"required": ["fromEmail"],
			"additionalProperties": false
		}`,
		Handler: func(ctx context.Context, o *workflow.Orchestrator, args json.RawMessage) (string, error) {
			var p struct {
				FromEmail string `json:"fromEmail"`
				Subject   string `json:"subject"`
				APIKey    string `json:"apiKey"`
			}
			if err := unmarshalArgs(args, &p); err != nil {
				return "", err
			}
			return o.SendEmails(ctx, p.FromEmail, p.Subject, p.APIKey)
		},
	},
	{
		Name:        "get_state",
		Description: "Return the full workflow state as JSON. Read-only.",
		InputSchema: emptySchema,
		Handler: func(_ context.Context, o *workflow.Orchestrator, _ json.RawMessage) (string, error) {
			state := o.GetState()
			out, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return "", fmt.Errorf("%w: encode state: %w", workflow.ErrExecution, err)
			}
			return string(out), nil
		},
	},
}

func unmarshalArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = []byte("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: decode arguments: %w", workflow.ErrValidation, err)
	}
	return nil
}
