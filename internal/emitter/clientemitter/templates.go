package clientemitter

const clientTemplate = `import requests
from typing import Dict, Any, Optional, List, Union


class {{.ClassName}}Client:
    """Python client for {{.Title}} {{.Version}}.

    Generated from a RAML specification.
    """

    def __init__(self, base_url: str, api_key: Optional[str] = None):
        """Initialize the API client.

        Args:
            base_url: The base URL for the API
            api_key: Optional API key for authentication
        """
        self.base_url = base_url.rstrip('/')
        self.api_key = api_key

    def get_headers(self) -> Dict[str, str]:
        """Headers sent with every request."""
        headers = {"Content-Type": "application/json"}
        if self.api_key:
            headers["Authorization"] = f"Bearer {self.api_key}"
        return headers
{{range .Methods}}
    def {{.Name}}({{.Signature}}) -> Dict[str, Any]:
        """{{.Description}}
{{- if .DocParams}}

        Args:
{{- range .DocParams}}
            {{.}}
{{- end}}
{{- end}}
        """
        url = f"{{.URLExpr}}"
        response = requests.{{.Verb}}(
            url,
            headers=self.get_headers(),
{{- if .HasQuery}}
            params=params if params else None,
{{- end}}
{{- if .HasBody}}
            json=data,
{{- end}}
        )
        response.raise_for_status()
        try:
            return response.json()
        except ValueError:
            return {"status": "success", "status_code": response.status_code}
{{end -}}
`
